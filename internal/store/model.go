package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/trknhr/neuron/internal/logger"
	"github.com/trknhr/neuron/internal/perceptron"
)

var ErrModelNotFound = errors.New("model not found")

// ModelRecord is a persisted perceptron. Scale holds the column maxima the
// training set was normalized with, empty when no normalization was applied.
type ModelRecord struct {
	ID        string
	Name      string
	State     perceptron.State
	Scale     []float64
	Epochs    int
	Converged bool
	CreatedAt time.Time
}

type ModelSummary struct {
	ID        string
	Name      string
	Inputs    int
	Examples  int
	Epochs    int
	Converged bool
	CreatedAt time.Time
}

type ModelStore interface {
	SaveModel(rec ModelRecord) (string, error)
	LoadModel(name string) (ModelRecord, error)
	ListModels() ([]ModelSummary, error)
	DeleteModel(name string) error
}

type SQLModelStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewSQLModelStore(db *sql.DB) ModelStore {
	return &SQLModelStore{db: db, now: time.Now}
}

// SaveModel stores rec under rec.Name, replacing any model with that name.
// Every save gets a fresh id.
func (s *SQLModelStore) SaveModel(rec ModelRecord) (string, error) {
	if rec.Name == "" {
		return "", fmt.Errorf("model name is required")
	}
	weights, err := json.Marshal(nonNil(rec.State.Weights))
	if err != nil {
		return "", err
	}
	scale, err := json.Marshal(nonNil(rec.Scale))
	if err != nil {
		return "", err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if err := deleteByName(tx, rec.Name); err != nil {
		return "", err
	}

	id := uuid.New().String()
	_, err = tx.Exec(`
		INSERT INTO models (id, name, bias, learning_rate, weights, scale, epochs, converged, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, rec.Name, rec.State.Bias, rec.State.LearningRate, string(weights), string(scale),
		rec.Epochs, boolToInt(rec.Converged), s.now().Unix())
	if err != nil {
		return "", fmt.Errorf("failed to insert model %s: %w", rec.Name, err)
	}

	stmt, err := tx.Prepare(`INSERT INTO examples (model_id, position, inputs, expected) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for i, ex := range rec.State.TrainingSet {
		inputs, err := json.Marshal(nonNil(ex.Inputs))
		if err != nil {
			return "", err
		}
		if _, err := stmt.Exec(id, i, string(inputs), ex.Expected); err != nil {
			return "", fmt.Errorf("failed to insert example %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		logger.Error("failed to commit model tx: %v", err)
		return "", err
	}
	return id, nil
}

func (s *SQLModelStore) LoadModel(name string) (ModelRecord, error) {
	var (
		rec       ModelRecord
		weights   string
		scale     string
		converged int
		created   int64
	)
	err := s.db.QueryRow(`
		SELECT id, name, bias, learning_rate, weights, scale, epochs, converged, created_at
		FROM models WHERE name = ?`, name).
		Scan(&rec.ID, &rec.Name, &rec.State.Bias, &rec.State.LearningRate, &weights, &scale,
			&rec.Epochs, &converged, &created)
	if err == sql.ErrNoRows {
		return ModelRecord{}, fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	if err != nil {
		return ModelRecord{}, err
	}
	rec.Converged = converged != 0
	rec.CreatedAt = time.Unix(created, 0)

	if err := json.Unmarshal([]byte(weights), &rec.State.Weights); err != nil {
		return ModelRecord{}, fmt.Errorf("corrupt weights for model %s: %w", name, err)
	}
	if err := json.Unmarshal([]byte(scale), &rec.Scale); err != nil {
		return ModelRecord{}, fmt.Errorf("corrupt scale for model %s: %w", name, err)
	}

	rows, err := s.db.Query(`SELECT inputs, expected FROM examples WHERE model_id = ? ORDER BY position`, rec.ID)
	if err != nil {
		return ModelRecord{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			inputs string
			ex     perceptron.Example
		)
		if err := rows.Scan(&inputs, &ex.Expected); err != nil {
			return ModelRecord{}, err
		}
		if err := json.Unmarshal([]byte(inputs), &ex.Inputs); err != nil {
			return ModelRecord{}, fmt.Errorf("corrupt example for model %s: %w", name, err)
		}
		rec.State.TrainingSet = append(rec.State.TrainingSet, ex)
	}
	return rec, rows.Err()
}

func (s *SQLModelStore) ListModels() ([]ModelSummary, error) {
	rows, err := s.db.Query(`
		SELECT m.id, m.name, m.weights, m.epochs, m.converged, m.created_at,
		       (SELECT COUNT(*) FROM examples e WHERE e.model_id = m.id)
		FROM models m
		ORDER BY m.name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ModelSummary
	for rows.Next() {
		var (
			sum       ModelSummary
			weights   string
			converged int
			created   int64
		)
		if err := rows.Scan(&sum.ID, &sum.Name, &weights, &sum.Epochs, &converged, &created, &sum.Examples); err != nil {
			return nil, err
		}
		var w []float64
		if err := json.Unmarshal([]byte(weights), &w); err != nil {
			logger.Warn("corrupt weights for model %s: %v", sum.Name, err)
		}
		if len(w) > 0 {
			sum.Inputs = len(w) - 1
		}
		sum.Converged = converged != 0
		sum.CreatedAt = time.Unix(created, 0)
		out = append(out, sum)
	}
	return out, rows.Err()
}

func (s *SQLModelStore) DeleteModel(name string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id string
	err = tx.QueryRow(`SELECT id FROM models WHERE name = ?`, name).Scan(&id)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", ErrModelNotFound, name)
	}
	if err != nil {
		return err
	}
	if err := deleteByName(tx, name); err != nil {
		return err
	}
	return tx.Commit()
}

func deleteByName(tx *sql.Tx, name string) error {
	if _, err := tx.Exec(`DELETE FROM examples WHERE model_id IN (SELECT id FROM models WHERE name = ?)`, name); err != nil {
		return err
	}
	_, err := tx.Exec(`DELETE FROM models WHERE name = ?`, name)
	return err
}

func nonNil(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
