package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/season-pricing-api/infrastructure/database/postgres"
	"github.com/vfg2006/season-pricing-api/internal/domain"
)

const (
	analysisRunsTable = "analysis_runs ar"
)

type AnalysisRunRepository interface {
	SaveOrUpdate(run *domain.AnalysisRun) error
	GetByID(id string) (*domain.AnalysisRun, error)
	ListRecent(limit int) ([]*domain.AnalysisRun, error)
	GetByWeek(seasonYear, week int, mode domain.RunMode) (*domain.AnalysisRun, error)
	DeleteOlderThan(days int) (int64, error)
}

type analysisRunRepository struct {
	conn postgres.Queryer
}

func NewAnalysisRunRepository(conn postgres.Queryer) AnalysisRunRepository {
	return &analysisRunRepository{
		conn: conn,
	}
}

func (r *analysisRunRepository) SaveOrUpdate(run *domain.AnalysisRun) error {
	resultsJSON, err := json.Marshal(run.Results)
	if err != nil {
		return fmt.Errorf("erro ao serializar resultados: %w", err)
	}

	diagnosticsJSON, err := json.Marshal(run.Diagnostics)
	if err != nil {
		return fmt.Errorf("erro ao serializar diagnósticos: %w", err)
	}

	query, args, err := squirrel.
		Insert("analysis_runs").
		Columns("id", "mode", "season_year", "week", "reference_date", "results", "diagnostics", "created_at", "updated_at").
		Values(run.ID, run.Mode, run.SeasonYear, run.Week, run.ReferenceDate.Format(time.DateOnly), resultsJSON, diagnosticsJSON, squirrel.Expr("NOW()"), squirrel.Expr("NOW()")).
		Suffix("ON CONFLICT (id) DO UPDATE SET results = EXCLUDED.results, diagnostics = EXCLUDED.diagnostics, updated_at = NOW()").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao salvar execução de análise: %w", err)
	}

	return nil
}

func (r *analysisRunRepository) GetByID(id string) (*domain.AnalysisRun, error) {
	query, args, err := squirrel.
		Select("ar.id, ar.mode, ar.season_year, ar.week, ar.reference_date, ar.results, ar.diagnostics, ar.created_at, ar.updated_at").
		From(analysisRunsTable).
		Where(squirrel.Eq{"ar.id": id}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	run, err := r.scanRun(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear execução de análise: %w", err)
	}

	return run, nil
}

func (r *analysisRunRepository) GetByWeek(seasonYear, week int, mode domain.RunMode) (*domain.AnalysisRun, error) {
	query, args, err := squirrel.
		Select("ar.id, ar.mode, ar.season_year, ar.week, ar.reference_date, ar.results, ar.diagnostics, ar.created_at, ar.updated_at").
		From(analysisRunsTable).
		Where(squirrel.Eq{"ar.season_year": seasonYear, "ar.week": week, "ar.mode": mode}).
		OrderBy("ar.created_at DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	run, err := r.scanRun(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear execução de análise: %w", err)
	}

	return run, nil
}

func (r *analysisRunRepository) ListRecent(limit int) ([]*domain.AnalysisRun, error) {
	query, args, err := squirrel.
		Select("ar.id, ar.mode, ar.season_year, ar.week, ar.reference_date, ar.results, ar.diagnostics, ar.created_at, ar.updated_at").
		From(analysisRunsTable).
		OrderBy("ar.created_at DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	rows, err := r.conn.Query(query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao executar a query: %w", err)
	}
	defer rows.Close()

	runs := make([]*domain.AnalysisRun, 0)
	for rows.Next() {
		run, err := r.scanRunRows(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao escanear execuções de análise: %w", err)
		}
		runs = append(runs, run)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de linhas: %w", err)
	}

	return runs, nil
}

func (r *analysisRunRepository) DeleteOlderThan(days int) (int64, error) {
	query, args, err := squirrel.
		Delete("analysis_runs").
		Where(squirrel.Expr("created_at < NOW() - INTERVAL '1 day' * ?", days)).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("erro ao construir a query: %w", err)
	}

	result, err := r.conn.Exec(query, args...)
	if err != nil {
		return 0, fmt.Errorf("erro ao remover execuções antigas: %w", err)
	}

	return result.RowsAffected()
}

func (r *analysisRunRepository) scanRun(row *sql.Row) (*domain.AnalysisRun, error) {
	var run domain.AnalysisRun
	var resultsJSON, diagnosticsJSON []byte

	err := row.Scan(
		&run.ID,
		&run.Mode,
		&run.SeasonYear,
		&run.Week,
		&run.ReferenceDate,
		&resultsJSON,
		&diagnosticsJSON,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return r.unmarshalRun(&run, resultsJSON, diagnosticsJSON)
}

func (r *analysisRunRepository) scanRunRows(rows *sql.Rows) (*domain.AnalysisRun, error) {
	var run domain.AnalysisRun
	var resultsJSON, diagnosticsJSON []byte

	err := rows.Scan(
		&run.ID,
		&run.Mode,
		&run.SeasonYear,
		&run.Week,
		&run.ReferenceDate,
		&resultsJSON,
		&diagnosticsJSON,
		&run.CreatedAt,
		&run.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return r.unmarshalRun(&run, resultsJSON, diagnosticsJSON)
}

func (r *analysisRunRepository) unmarshalRun(run *domain.AnalysisRun, resultsJSON, diagnosticsJSON []byte) (*domain.AnalysisRun, error) {
	if len(resultsJSON) > 0 {
		if err := json.Unmarshal(resultsJSON, &run.Results); err != nil {
			return nil, fmt.Errorf("erro ao desserializar resultados: %w", err)
		}
	}

	if len(diagnosticsJSON) > 0 {
		if err := json.Unmarshal(diagnosticsJSON, &run.Diagnostics); err != nil {
			return nil, fmt.Errorf("erro ao desserializar diagnósticos: %w", err)
		}
	}

	return run, nil
}
