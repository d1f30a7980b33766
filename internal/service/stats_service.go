package service

import (
	"context"
	"math"
	"time"

	"fittrack/internal/apperror"
	"fittrack/internal/domain"
	"fittrack/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Period selects the lookback window for stats.
type Period string

const (
	PeriodWeek    Period = "week"
	PeriodMonth   Period = "month"
	PeriodQuarter Period = "quarter"
	PeriodYear    Period = "year"
)

func (p Period) days() (int, bool) {
	switch p {
	case PeriodWeek:
		return 7, true
	case PeriodMonth:
		return 30, true
	case PeriodQuarter:
		return 90, true
	case PeriodYear:
		return 365, true
	}
	return 0, false
}

// WorkoutStats summarizes training volume over a period.
type WorkoutStats struct {
	TotalWorkouts       int     `json:"totalWorkouts"`
	TotalDurationMin    int     `json:"totalDurationMin"`
	AverageDurationMin  float64 `json:"averageDurationMin"`
	TotalWeightLiftedKg float64 `json:"totalWeightLiftedKg"`
	PerWeek             float64 `json:"perWeek"`
}

// ProgressStats summarizes body progress over a period.
type ProgressStats struct {
	WeightChangeKg   float64 `json:"weightChangeKg"`
	WeightChangePct  float64 `json:"weightChangePct"`
	ConsistencyScore float64 `json:"consistencyScore"`
}

// BMIStats is the body mass index derived from the latest weigh-in and the
// profile height. Absent when either input is missing.
type BMIStats struct {
	Value    float64 `json:"value"`
	Category string  `json:"category"`
}

// PeriodStats is the full stats report for one period.
type PeriodStats struct {
	Period    Period        `json:"period"`
	StartDate time.Time     `json:"startDate"`
	EndDate   time.Time     `json:"endDate"`
	Workouts  WorkoutStats  `json:"workouts"`
	Progress  ProgressStats `json:"progress"`
	BMI       *BMIStats     `json:"bmi,omitempty"`
}

// StatsService computes derived metrics over the logged data.
type StatsService interface {
	GetStats(ctx context.Context, ownerID primitive.ObjectID, period Period) (*PeriodStats, error)
}

type statsService struct {
	weights  repository.WeightRepository
	workouts repository.WorkoutRepository
	profiles repository.ProfileRepository
	now      func() time.Time
}

// NewStatsService creates a new StatsService.
func NewStatsService(weights repository.WeightRepository, workouts repository.WorkoutRepository, profiles repository.ProfileRepository) StatsService {
	return &statsService{
		weights:  weights,
		workouts: workouts,
		profiles: profiles,
		now:      time.Now,
	}
}

func (s *statsService) GetStats(ctx context.Context, ownerID primitive.ObjectID, period Period) (*PeriodStats, error) {
	if period == "" {
		period = PeriodMonth
	}
	days, ok := period.days()
	if !ok {
		return nil, apperror.New(apperror.KindValidation, "period must be one of: week, month, quarter, year")
	}

	end := s.now().UTC()
	start := end.AddDate(0, 0, -days)

	entries, err := s.weights.ListByOwner(ctx, ownerID, start, end)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to load weight entries", err)
	}
	workouts, err := s.workouts.ListByOwner(ctx, ownerID, start, end)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindPersistence, "Failed to load workouts", err)
	}

	stats := &PeriodStats{
		Period:    period,
		StartDate: start,
		EndDate:   end,
	}

	// Workout volume.
	weeks := float64(days) / 7
	stats.Workouts.TotalWorkouts = len(workouts)
	for _, w := range workouts {
		stats.Workouts.TotalDurationMin += w.DurationMin
		stats.Workouts.TotalWeightLiftedKg += w.TotalWeightLifted()
	}
	if len(workouts) > 0 {
		stats.Workouts.AverageDurationMin = float64(stats.Workouts.TotalDurationMin) / float64(len(workouts))
	}
	stats.Workouts.PerWeek = float64(len(workouts)) / weeks

	// Weight change needs at least two entries in the window.
	if len(entries) >= 2 {
		first := entries[0].WeightKg
		last := entries[len(entries)-1].WeightKg
		stats.Progress.WeightChangeKg = last - first
		if first != 0 {
			stats.Progress.WeightChangePct = (last - first) / first * 100
		}
	}

	// Four workouts a week scores 100.
	stats.Progress.ConsistencyScore = math.Min(stats.Workouts.PerWeek*25, 100)

	stats.BMI = s.bmi(ctx, ownerID, entries)
	return stats, nil
}

// bmi derives the BMI from the latest in-window weigh-in and the profile
// height, or nil when either is missing.
func (s *statsService) bmi(ctx context.Context, ownerID primitive.ObjectID, entries []domain.WeightEntry) *BMIStats {
	if len(entries) == 0 {
		return nil
	}

	// Stats stay useful without BMI; any profile problem just omits it.
	profile, err := s.profiles.GetByUserID(ctx, ownerID)
	if err != nil {
		return nil
	}
	if profile.HeightCm <= 0 {
		return nil
	}

	heightM := profile.HeightCm / 100
	value := entries[len(entries)-1].WeightKg / (heightM * heightM)

	return &BMIStats{Value: value, Category: bmiCategory(value)}
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "underweight"
	case bmi < 25:
		return "normal"
	case bmi < 30:
		return "overweight"
	default:
		return "obese"
	}
}
