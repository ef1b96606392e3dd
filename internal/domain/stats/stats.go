// Package stats derives progress statistics from a user's workouts.
package stats

import (
	"sort"
	"time"

	"github.com/oksasatya/go-fitness-tracker/internal/domain/entity"
)

const (
	topExercises  = 10
	frequencyDays = 30
	dayLayout     = "2006-01-02"
)

type ExerciseCount struct {
	Name  string
	Count int
}

type DayCount struct {
	Day   string
	Count int
}

// DayVolume is the summed weight*reps of every workout on one day.
type DayVolume struct {
	Day    string
	Volume float64
}

// PersonalRecord tracks the best set values for one exercise name.
// AchievedAt is the date of the workout where MaxWeight was first reached.
type PersonalRecord struct {
	Exercise   string
	MaxWeight  float64
	MaxReps    int
	MaxVolume  float64
	AchievedAt time.Time
}

type Summary struct {
	TotalWorkouts     int
	TotalExercises    int
	TotalVolume       float64
	Streak            int
	ExerciseFrequency []ExerciseCount
	PersonalRecords   []PersonalRecord
	Frequency         []DayCount
	VolumeByDay       []DayVolume
}

// Compute builds the summary. Days are calendar days in UTC and now marks "today".
func Compute(workouts []entity.Workout, now time.Time) Summary {
	sorted := make([]entity.Workout, len(workouts))
	copy(sorted, workouts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })

	s := Summary{TotalWorkouts: len(sorted)}
	for i := range sorted {
		s.TotalExercises += len(sorted[i].Exercises)
		s.TotalVolume += sorted[i].Volume()
	}
	s.Streak = streak(sorted, now)
	s.ExerciseFrequency = exerciseFrequency(sorted)
	s.PersonalRecords = personalRecords(sorted)
	s.Frequency = frequency(sorted, now, frequencyDays)
	s.VolumeByDay = volumeByDay(sorted)
	return s
}

func day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// streak counts consecutive days going back from today that each have a workout.
func streak(workouts []entity.Workout, now time.Time) int {
	seen := make(map[time.Time]struct{}, len(workouts))
	for _, w := range workouts {
		seen[day(w.Date)] = struct{}{}
	}
	n := 0
	for d := day(now); ; d = d.AddDate(0, 0, -1) {
		if _, ok := seen[d]; !ok {
			return n
		}
		n++
	}
}

func exerciseFrequency(workouts []entity.Workout) []ExerciseCount {
	counts := map[string]int{}
	for _, w := range workouts {
		for _, ex := range w.Exercises {
			counts[ex.Name]++
		}
	}
	out := make([]ExerciseCount, 0, len(counts))
	for name, c := range counts {
		out = append(out, ExerciseCount{Name: name, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > topExercises {
		out = out[:topExercises]
	}
	return out
}

func personalRecords(workouts []entity.Workout) []PersonalRecord {
	records := map[string]*PersonalRecord{}
	for _, w := range workouts {
		for _, ex := range w.Exercises {
			for _, set := range ex.Sets {
				vol := set.Weight * float64(set.Reps)
				pr, ok := records[ex.Name]
				if !ok {
					records[ex.Name] = &PersonalRecord{
						Exercise:   ex.Name,
						MaxWeight:  set.Weight,
						MaxReps:    set.Reps,
						MaxVolume:  vol,
						AchievedAt: w.Date,
					}
					continue
				}
				if set.Weight > pr.MaxWeight {
					pr.MaxWeight = set.Weight
					pr.AchievedAt = w.Date
				}
				if set.Reps > pr.MaxReps {
					pr.MaxReps = set.Reps
				}
				if vol > pr.MaxVolume {
					pr.MaxVolume = vol
				}
			}
		}
	}
	out := make([]PersonalRecord, 0, len(records))
	for _, pr := range records {
		out = append(out, *pr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].MaxWeight != out[j].MaxWeight {
			return out[i].MaxWeight > out[j].MaxWeight
		}
		return out[i].Exercise < out[j].Exercise
	})
	return out
}

// frequency returns one bucket per day for the last n days, oldest first.
func frequency(workouts []entity.Workout, now time.Time, n int) []DayCount {
	today := day(now)
	start := today.AddDate(0, 0, -(n - 1))
	out := make([]DayCount, n)
	for i := 0; i < n; i++ {
		out[i].Day = start.AddDate(0, 0, i).Format(dayLayout)
	}
	for _, w := range workouts {
		d := day(w.Date)
		if d.Before(start) || d.After(today) {
			continue
		}
		idx := int(d.Sub(start).Hours() / 24)
		out[idx].Count++
	}
	return out
}

// volumeByDay expects workouts sorted by date and returns one entry per
// training day, oldest first. Days without workouts are omitted.
func volumeByDay(workouts []entity.Workout) []DayVolume {
	out := make([]DayVolume, 0, len(workouts))
	for _, w := range workouts {
		d := day(w.Date).Format(dayLayout)
		if n := len(out); n > 0 && out[n-1].Day == d {
			out[n-1].Volume += w.Volume()
			continue
		}
		out = append(out, DayVolume{Day: d, Volume: w.Volume()})
	}
	return out
}
