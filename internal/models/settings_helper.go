package models

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/studylit/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys missing from the map keep their default values.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	floats := map[string]*float64{
		constants.SettingWeightStudyTime:         &settings.Weights.StudyTime,
		constants.SettingWeightQuestCompletion:   &settings.Weights.QuestCompletion,
		constants.SettingWeightConsistency:       &settings.Weights.Consistency,
		constants.SettingWeightDeadlineAdherence: &settings.Weights.DeadlineAdherence,
	}
	ints := map[string]*int{
		constants.SettingThresholdExcellent:         &settings.Thresholds.Excellent,
		constants.SettingThresholdGood:              &settings.Thresholds.Good,
		constants.SettingThresholdNeedsAttention:    &settings.Thresholds.NeedsAttention,
		constants.SettingThresholdCritical:          &settings.Thresholds.Critical,
		constants.SettingFlagMinPerformanceScore:    &settings.Criteria.MinPerformanceScore,
		constants.SettingFlagMaxDaysSinceLastStudy:  &settings.Criteria.MaxDaysSinceLastStudy,
		constants.SettingFlagMinQuestCompletionRate: &settings.Criteria.MinQuestCompletionRate,
		constants.SettingFlagMinConsistencyScore:    &settings.Criteria.MinConsistencyScore,
		constants.SettingDailyStudyMinutes:          &settings.DailyStudyMinutes,
		constants.SettingPriorityTopN:               &settings.PriorityTopN,
	}

	for key, value := range data {
		if dst, ok := floats[key]; ok {
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			*dst = v
			continue
		}
		if dst, ok := ints[key]; ok {
			v, err := strconv.Atoi(value)
			if err != nil {
				return Settings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			*dst = v
			continue
		}
		switch key {
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingDayStart:
			settings.DayStart = value
		}
	}
	ApplyDefaultSettings(&settings)
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return map[string]string{
		constants.SettingWeightStudyTime:            f(settings.Weights.StudyTime),
		constants.SettingWeightQuestCompletion:      f(settings.Weights.QuestCompletion),
		constants.SettingWeightConsistency:          f(settings.Weights.Consistency),
		constants.SettingWeightDeadlineAdherence:    f(settings.Weights.DeadlineAdherence),
		constants.SettingThresholdExcellent:         strconv.Itoa(settings.Thresholds.Excellent),
		constants.SettingThresholdGood:              strconv.Itoa(settings.Thresholds.Good),
		constants.SettingThresholdNeedsAttention:    strconv.Itoa(settings.Thresholds.NeedsAttention),
		constants.SettingThresholdCritical:          strconv.Itoa(settings.Thresholds.Critical),
		constants.SettingFlagMinPerformanceScore:    strconv.Itoa(settings.Criteria.MinPerformanceScore),
		constants.SettingFlagMaxDaysSinceLastStudy:  strconv.Itoa(settings.Criteria.MaxDaysSinceLastStudy),
		constants.SettingFlagMinQuestCompletionRate: strconv.Itoa(settings.Criteria.MinQuestCompletionRate),
		constants.SettingFlagMinConsistencyScore:    strconv.Itoa(settings.Criteria.MinConsistencyScore),
		constants.SettingTimezone:                   settings.Timezone,
		constants.SettingDailyStudyMinutes:          strconv.Itoa(settings.DailyStudyMinutes),
		constants.SettingDayStart:                   settings.DayStart,
		constants.SettingPriorityTopN:               strconv.Itoa(settings.PriorityTopN),
	}
}

// ApplyDefaultSettings applies default values to missing planning settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
	if settings.DayStart == "" {
		settings.DayStart = constants.DefaultDayStart
	}
	if settings.DailyStudyMinutes == 0 {
		settings.DailyStudyMinutes = constants.DefaultDailyStudyMinutes
	}
	if settings.PriorityTopN == 0 {
		settings.PriorityTopN = constants.DefaultPriorityTopN
	}
}
