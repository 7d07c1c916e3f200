package service

import (
	"context"
	"fmt"
	"time"

	"vitalcoach/internal/healthapi"
	"vitalcoach/internal/metrics"
	"vitalcoach/internal/store"
)

// SampleSource fetches timestamped samples from the health gateway.
// *healthapi.Client satisfies it; tests substitute a fake.
type SampleSource interface {
	GetSamples(ctx context.Context, kind healthapi.Kind, from, to time.Time) ([]healthapi.Sample, error)
}

// bodyKinds are the sample streams that feed daily body records.
var bodyKinds = []healthapi.Kind{
	healthapi.KindBodyMass,
	healthapi.KindBodyFatPercentage,
	healthapi.KindSkeletalMuscleMass,
	healthapi.KindBodyMassIndex,
	healthapi.KindBasalEnergyBurned,
	healthapi.KindLeanBodyMass,
	healthapi.KindHeight,
	healthapi.KindWaistCircumference,
}

// SyncService orchestrates syncing body data from the health gateway
type SyncService struct {
	source SampleSource
	store  *store.Store
	userID string
}

// NewSyncService creates a new sync service
func NewSyncService(source SampleSource, st *store.Store, userID string) *SyncService {
	return &SyncService{
		source: source,
		store:  st,
		userID: userID,
	}
}

// SyncProgress reports progress during sync
type SyncProgress struct {
	Phase     string // "fetch", "store"
	Total     int
	Completed int
	Current   string
	Error     error
}

// SyncResult contains the results of a sync operation
type SyncResult struct {
	SamplesFetched int
	DaysBuilt      int
	DaysStored     int
	DaysUpdated    int
	Errors         []error
}

// SyncAll fetches all body sample kinds since the last sync, builds
// daily records and stores them.
func (s *SyncService) SyncAll(ctx context.Context, progress chan<- SyncProgress) (*SyncResult, error) {
	if progress != nil {
		defer close(progress)
	}

	result := &SyncResult{}
	now := time.Now()
	from := s.syncWindowStart(now)

	// Phase 1: fetch each sample kind
	raw, err := s.fetchBody(ctx, from, now, progress, result)
	if err != nil {
		return result, fmt.Errorf("fetching samples: %w", err)
	}

	// Phase 2: build daily records and store them
	records := metrics.BuildBodyMetrics(s.userID, *raw)
	result.DaysBuilt = len(records)

	if progress != nil {
		progress <- SyncProgress{Phase: "store", Total: len(records), Completed: 0}
	}

	for i := range records {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		updated, err := s.store.UpsertBodyMetrics(&records[i])
		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("storing %s: %w", records[i].Day.Format("2006-01-02"), err))
			continue
		}
		result.DaysStored++
		if updated {
			result.DaysUpdated++
		}

		if progress != nil {
			progress <- SyncProgress{Phase: "store", Total: len(records), Completed: i + 1}
		}
	}

	// Record sync time only when storage got through cleanly, so a
	// failed run is retried over the same window.
	if len(result.Errors) == 0 {
		if err := s.store.SetPreference(s.userID, PrefLastSync, now.Format(time.RFC3339)); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("recording sync time: %w", err))
		}
	}

	return result, nil
}

// fetchBody pulls every body sample kind for the window.
func (s *SyncService) fetchBody(ctx context.Context, from, to time.Time, progress chan<- SyncProgress, result *SyncResult) (*metrics.RawBody, error) {
	raw := &metrics.RawBody{}

	if progress != nil {
		progress <- SyncProgress{Phase: "fetch", Total: len(bodyKinds), Completed: 0}
	}

	for i, kind := range bodyKinds {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if progress != nil {
			progress <- SyncProgress{Phase: "fetch", Total: len(bodyKinds), Completed: i, Current: string(kind)}
		}

		samples, err := s.source.GetSamples(ctx, kind, from, to)
		if err != nil {
			return nil, fmt.Errorf("fetching %s: %w", kind, err)
		}
		result.SamplesFetched += len(samples)

		readings := toReadings(samples)
		switch kind {
		case healthapi.KindBodyMass:
			raw.Weights = readings
		case healthapi.KindBodyFatPercentage:
			raw.BodyFat = readings
		case healthapi.KindSkeletalMuscleMass:
			raw.SkeletalMuscle = readings
		case healthapi.KindBodyMassIndex:
			raw.BMI = readings
		case healthapi.KindBasalEnergyBurned:
			raw.BasalEnergy = readings
		case healthapi.KindLeanBodyMass:
			raw.LeanBodyMass = readings
		case healthapi.KindHeight:
			raw.Height = readings
		case healthapi.KindWaistCircumference:
			raw.Waist = readings
		}
	}

	if progress != nil {
		progress <- SyncProgress{Phase: "fetch", Total: len(bodyKinds), Completed: len(bodyKinds)}
	}

	return raw, nil
}

// syncWindowStart picks the fetch window start: a year back on first
// sync, otherwise the last sync time minus a small overlap.
func (s *SyncService) syncWindowStart(now time.Time) time.Time {
	lastSyncStr, _ := s.store.GetPreference(s.userID, PrefLastSync)
	if lastSyncStr == "" {
		return now.AddDate(0, 0, -InitialSyncDays)
	}
	lastSync, err := time.Parse(time.RFC3339, lastSyncStr)
	if err != nil {
		return now.AddDate(0, 0, -InitialSyncDays)
	}
	return lastSync.AddDate(0, 0, -SyncOverlapDays)
}

// toReadings converts gateway samples to preprocessing readings
func toReadings(samples []healthapi.Sample) []metrics.Reading {
	if len(samples) == 0 {
		return nil
	}
	readings := make([]metrics.Reading, len(samples))
	for i, sm := range samples {
		readings[i] = metrics.Reading{Time: sm.Timestamp, Value: sm.Value}
	}
	return readings
}
