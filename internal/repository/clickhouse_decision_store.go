package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"SignalFuse/internal/domain/models"
	domrepo "SignalFuse/internal/domain/repository"
	pkgch "SignalFuse/pkg/clickhouse"
	applogger "SignalFuse/pkg/logger"
)

// CHDecisionStore persists fused decisions and execution estimates in
// ClickHouse. Append-only audit tables; the dashboard reads the latest
// row per symbol.
type CHDecisionStore struct {
	db             *sql.DB
	decisionTable  string
	executionTable string
	l              *applogger.Logger
}

func NewCHDecisionStore(ch *pkgch.Client, database string) *CHDecisionStore {
	return &CHDecisionStore{
		db:             ch.DB(),
		decisionTable:  database + ".decisions",
		executionTable: database + ".executions",
	}
}

// SetLogger injects a structured logger.
func (s *CHDecisionStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHDecisionStore) Init(ctx context.Context) error {
	return s.Health(ctx)
}

func (s *CHDecisionStore) StoreConsensus(ctx context.Context, res *models.ConsensusResult) error {
	breakdown, err := json.Marshal(res.SourceBreakdown)
	if err != nil {
		return fmt.Errorf("marshal breakdown: %w", err)
	}
	q := fmt.Sprintf(`INSERT INTO %s
        (ts, symbol, decision, agreement_score, confidence_score, weighted_vote, conflicts, solidity_reasons, source_breakdown)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.decisionTable)
	_, err = s.db.ExecContext(ctx, q,
		res.Timestamp,
		res.Symbol,
		string(res.FinalDecision),
		uint8(res.AgreementScore),
		res.ConfidenceScore,
		res.WeightedVote,
		res.ConflictAnalysis,
		res.SolidityReasons,
		string(breakdown),
	)
	if err != nil {
		s.logError("insert decision", res.Symbol, err)
		return fmt.Errorf("store consensus: %w", err)
	}
	return nil
}

func (s *CHDecisionStore) StoreExecution(ctx context.Context, res *models.ExecutionResult) error {
	tranches := 0
	if res.Pyramid != nil {
		tranches = res.Pyramid.Tranches
	}
	q := fmt.Sprintf(`INSERT INTO %s
        (ts, symbol, category, slippage_pct, fee_pct, total_cost_pct, requested_strategy, recommended_strategy,
         tranches, nominal_price, real_price, adjusted_profit, profit_leakage_pct, recommendation)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, s.executionTable)
	_, err := s.db.ExecContext(ctx, q,
		res.Timestamp,
		res.Symbol,
		string(res.Category),
		res.SlippagePct,
		res.FeePct,
		res.TotalCostPct,
		string(res.RequestedStrategy),
		string(res.RecommendedStrategy),
		uint8(tranches),
		res.NominalPrice,
		res.RealPrice,
		res.AdjustedProfit,
		res.ProfitLeakagePct,
		res.Recommendation,
	)
	if err != nil {
		s.logError("insert execution", res.Symbol, err)
		return fmt.Errorf("store execution: %w", err)
	}
	return nil
}

func (s *CHDecisionStore) LatestConsensus(ctx context.Context, symbol string) (*models.ConsensusResult, error) {
	q := fmt.Sprintf(`SELECT ts, symbol, decision, agreement_score, confidence_score, weighted_vote,
        conflicts, solidity_reasons, source_breakdown
        FROM %s WHERE symbol = ? ORDER BY ts DESC LIMIT 1`, s.decisionTable)

	var (
		res       models.ConsensusResult
		decision  string
		agreement uint8
		breakdown string
	)
	row := s.db.QueryRowContext(ctx, q, symbol)
	err := row.Scan(&res.Timestamp, &res.Symbol, &decision, &agreement, &res.ConfidenceScore,
		&res.WeightedVote, &res.ConflictAnalysis, &res.SolidityReasons, &breakdown)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		s.logError("latest decision", symbol, err)
		return nil, fmt.Errorf("latest consensus: %w", err)
	}
	res.FinalDecision = models.Direction(decision)
	res.AgreementScore = int(agreement)
	if breakdown != "" {
		if err := json.Unmarshal([]byte(breakdown), &res.SourceBreakdown); err != nil {
			return nil, fmt.Errorf("unmarshal breakdown: %w", err)
		}
	}
	return &res, nil
}

func (s *CHDecisionStore) Health(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *CHDecisionStore) Close() error { return nil } // pool owned by pkg/clickhouse client

func (s *CHDecisionStore) logError(op, symbol string, err error) {
	if s.l == nil {
		return
	}
	s.l.Error("clickhouse "+op+" error",
		applogger.String("table", s.decisionTable),
		applogger.String("symbol", symbol),
		applogger.Error(err),
	)
}

// Schema returns the DDL the DI layer feeds to InitSchema at startup.
func Schema(database string) []string {
	return []string{
		"CREATE DATABASE IF NOT EXISTS " + database,
		fmt.Sprintf(strings.TrimSpace(`
CREATE TABLE IF NOT EXISTS %s.decisions (
    ts DateTime64(3),
    symbol String,
    decision LowCardinality(String),
    agreement_score UInt8,
    confidence_score Float64,
    weighted_vote Float64,
    conflicts Array(String),
    solidity_reasons Array(String),
    source_breakdown String
) ENGINE = MergeTree ORDER BY (symbol, ts)`), database),
		fmt.Sprintf(strings.TrimSpace(`
CREATE TABLE IF NOT EXISTS %s.executions (
    ts DateTime64(3),
    symbol String,
    category LowCardinality(String),
    slippage_pct Float64,
    fee_pct Float64,
    total_cost_pct Float64,
    requested_strategy LowCardinality(String),
    recommended_strategy LowCardinality(String),
    tranches UInt8,
    nominal_price Float64,
    real_price Float64,
    adjusted_profit Float64,
    profit_leakage_pct Float64,
    recommendation String
) ENGINE = MergeTree ORDER BY (symbol, ts)`), database),
	}
}

var _ domrepo.DecisionStore = (*CHDecisionStore)(nil)
