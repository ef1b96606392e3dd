package handlers

import (
	"time"

	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
	"github.com/oksasatya/go-fitness-tracker/internal/domain/stats"
)

type setView struct {
	ID     int64   `json:"id"`
	Weight float64 `json:"weight"`
	Reps   int     `json:"reps"`
}

type exerciseView struct {
	ID   int64     `json:"id"`
	Name string    `json:"name"`
	Sets []setView `json:"sets"`
}

type workoutView struct {
	ID        int64          `json:"id"`
	Date      time.Time      `json:"date"`
	UserID    int64          `json:"user_id"`
	Name      string         `json:"name"`
	IsPublic  bool           `json:"is_public"`
	Exercises []exerciseView `json:"exercises"`
}

func toWorkoutView(w *entity.Workout) workoutView {
	out := workoutView{
		ID:        w.ID,
		Date:      w.Date,
		UserID:    w.UserID,
		Name:      w.Name,
		IsPublic:  w.IsPublic,
		Exercises: make([]exerciseView, 0, len(w.Exercises)),
	}
	for _, ex := range w.Exercises {
		ev := exerciseView{ID: ex.ID, Name: ex.Name, Sets: make([]setView, 0, len(ex.Sets))}
		for _, s := range ex.Sets {
			ev.Sets = append(ev.Sets, setView{ID: s.ID, Weight: s.Weight, Reps: s.Reps})
		}
		out.Exercises = append(out.Exercises, ev)
	}
	return out
}

func toWorkoutViews(ws []entity.Workout) []workoutView {
	out := make([]workoutView, 0, len(ws))
	for i := range ws {
		out = append(out, toWorkoutView(&ws[i]))
	}
	return out
}

type personalRecordView struct {
	Exercise   string  `json:"exercise"`
	MaxWeight  float64 `json:"max_weight"`
	MaxReps    int     `json:"max_reps"`
	MaxVolume  float64 `json:"max_volume"`
	AchievedAt string  `json:"achieved_at"`
}

type statsView struct {
	TotalWorkouts     int                  `json:"total_workouts"`
	TotalExercises    int                  `json:"total_exercises"`
	TotalVolume       float64              `json:"total_volume"`
	CurrentStreak     int                  `json:"current_streak"`
	ExerciseFrequency map[string]int       `json:"exercise_frequency"`
	TopExercises      []string             `json:"top_exercises"`
	PersonalRecords   []personalRecordView `json:"personal_records"`
	WorkoutFrequency  map[string]int       `json:"workout_frequency"`
	VolumeProgress    []dayVolumeView      `json:"volume_progress"`
}

type dayVolumeView struct {
	Date   string  `json:"date"`
	Volume float64 `json:"volume"`
}

func toStatsView(s stats.Summary) statsView {
	out := statsView{
		TotalWorkouts:     s.TotalWorkouts,
		TotalExercises:    s.TotalExercises,
		TotalVolume:       s.TotalVolume,
		CurrentStreak:     s.Streak,
		ExerciseFrequency: make(map[string]int, len(s.ExerciseFrequency)),
		TopExercises:      make([]string, 0, len(s.ExerciseFrequency)),
		PersonalRecords:   make([]personalRecordView, 0, len(s.PersonalRecords)),
		WorkoutFrequency:  make(map[string]int, len(s.Frequency)),
		VolumeProgress:    make([]dayVolumeView, 0, len(s.VolumeByDay)),
	}
	for _, ec := range s.ExerciseFrequency {
		out.ExerciseFrequency[ec.Name] = ec.Count
		out.TopExercises = append(out.TopExercises, ec.Name)
	}
	for _, pr := range s.PersonalRecords {
		out.PersonalRecords = append(out.PersonalRecords, personalRecordView{
			Exercise:   pr.Exercise,
			MaxWeight:  pr.MaxWeight,
			MaxReps:    pr.MaxReps,
			MaxVolume:  pr.MaxVolume,
			AchievedAt: pr.AchievedAt.UTC().Format("2006-01-02"),
		})
	}
	for _, d := range s.Frequency {
		out.WorkoutFrequency[d.Day] = d.Count
	}
	for _, d := range s.VolumeByDay {
		out.VolumeProgress = append(out.VolumeProgress, dayVolumeView{Date: d.Day, Volume: d.Volume})
	}
	return out
}
