package cmd

import (
	"github.com/saturogrp-blip/Grand/internal/interview"
	"github.com/saturogrp-blip/Grand/internal/store"
)

func setRecord(set interview.Set) store.SetRecord {
	rec := store.SetRecord{
		ID:           set.ID,
		Organization: set.Organization,
		Strategy:     set.Strategy.String(),
		Sample:       set.Sample,
		Seed:         set.Seed,
		CreatedAt:    set.CreatedAt,
	}
	for _, q := range set.Questions {
		rec.Questions = append(rec.Questions, store.QuestionRecord{Text: q.Text, Mandatory: q.Mandatory})
	}
	return rec
}

func setFromRecord(rec store.SetRecord) (interview.Set, error) {
	strategy, err := interview.ParseStrategy(rec.Strategy)
	if err != nil {
		return interview.Set{}, err
	}
	set := interview.Set{
		ID:           rec.ID,
		Organization: rec.Organization,
		Strategy:     strategy,
		Sample:       rec.Sample,
		Seed:         rec.Seed,
		CreatedAt:    rec.CreatedAt,
	}
	for _, q := range rec.Questions {
		set.Questions = append(set.Questions, interview.Question{Text: q.Text, Mandatory: q.Mandatory})
	}
	return set, nil
}
