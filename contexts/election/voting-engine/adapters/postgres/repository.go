package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"ballotbox/contexts/election/voting-engine/domain/entities"
	domainerrors "ballotbox/contexts/election/voting-engine/domain/errors"
	"ballotbox/contexts/election/voting-engine/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the durable vote ledger and tally store. The votes table
// carries a unique index on (voter_reg_number, position); that index, not the
// application pre-check, is what upholds one-vote-per-voter-per-position when
// two submissions race. Do not remove it to "simplify".
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) FindVotesFor(ctx context.Context, voterRegNumber string, positions []string) ([]entities.Vote, error) {
	var rows []voteModel
	err := r.db.WithContext(ctx).
		Where("voter_reg_number = ?", strings.TrimSpace(voterRegNumber)).
		Where("position IN ?", positions).
		Order("created_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("election_repo_find_votes_failed", err,
			"voter_reg_number", strings.TrimSpace(voterRegNumber),
		)
	}
	items := make([]entities.Vote, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// ApplyBatch inserts every fact and increments every matching candidate
// counter inside one transaction. A counter increment never becomes visible
// without its backing fact and vice versa; a unique-index violation rolls the
// whole batch back and reports ErrAlreadyVoted.
func (r *Repository) ApplyBatch(ctx context.Context, facts []entities.Vote) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := make([]voteModel, 0, len(facts))
		for _, fact := range facts {
			rows = append(rows, voteModelFromEntity(fact))
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		for _, fact := range facts {
			update := tx.Model(&candidateModel{}).
				Where("id = ?", strings.TrimSpace(fact.CandidateID)).
				UpdateColumn("total_votes", gorm.Expr("total_votes + ?", 1))
			if update.Error != nil {
				return update.Error
			}
			if update.RowsAffected == 0 {
				return domainerrors.ErrCandidateNotFound
			}
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrAlreadyVoted
		}
		if errors.Is(err, domainerrors.ErrCandidateNotFound) {
			return err
		}
		return r.logError("election_repo_apply_batch_failed", err,
			"batch_size", len(facts),
		)
	}
	return nil
}

func (r *Repository) CountVotesFor(ctx context.Context, candidateID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Where("candidate_id = ?", strings.TrimSpace(candidateID)).
		Count(&count).
		Error
	if err != nil {
		return 0, r.logError("election_repo_count_votes_failed", err,
			"candidate_id", strings.TrimSpace(candidateID),
		)
	}
	return count, nil
}

func (r *Repository) CountVotesByCandidate(ctx context.Context, candidateIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(candidateIDs))
	for _, id := range candidateIDs {
		counts[strings.TrimSpace(id)] = 0
	}
	if len(candidateIDs) == 0 {
		return counts, nil
	}

	type countRow struct {
		CandidateID string `gorm:"column:candidate_id"`
		Count       int64  `gorm:"column:count"`
	}
	var rows []countRow
	err := r.db.WithContext(ctx).
		Model(&voteModel{}).
		Select("candidate_id, COUNT(*) AS count").
		Where("candidate_id IN ?", candidateIDs).
		Group("candidate_id").
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("election_repo_count_by_candidate_failed", err,
			"candidate_count", len(candidateIDs),
		)
	}
	for _, row := range rows {
		counts[row.CandidateID] = row.Count
	}
	return counts, nil
}

func (r *Repository) Tallies(ctx context.Context, candidateIDs []string) (map[string]int64, error) {
	tallies := make(map[string]int64, len(candidateIDs))
	if len(candidateIDs) == 0 {
		return tallies, nil
	}
	var rows []candidateModel
	err := r.db.WithContext(ctx).
		Select("id, total_votes").
		Where("id IN ?", candidateIDs).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("election_repo_tallies_failed", err,
			"candidate_count", len(candidateIDs),
		)
	}
	for _, row := range rows {
		tallies[row.ID] = row.TotalVotes
	}
	return tallies, nil
}

func (r *Repository) SetTally(ctx context.Context, candidateID string, count int64) error {
	result := r.db.WithContext(ctx).
		Model(&candidateModel{}).
		Where("id = ?", strings.TrimSpace(candidateID)).
		UpdateColumn("total_votes", count)
	if result.Error != nil {
		return r.logError("election_repo_set_tally_failed", result.Error,
			"candidate_id", strings.TrimSpace(candidateID),
		)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrCandidateNotFound
	}
	return nil
}

func (r *Repository) ResetAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("1 = 1").Delete(&voteModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return tx.Model(&candidateModel{}).
			Where("1 = 1").
			UpdateColumn("total_votes", 0).
			Error
	})
	if err != nil {
		return 0, r.logError("election_repo_reset_all_failed", err)
	}
	return deleted, nil
}

func (r *Repository) ResetPosition(ctx context.Context, position string, candidateIDs []string) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("position = ?", strings.TrimSpace(position)).Delete(&voteModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected

		// Recompute from remaining facts instead of zeroing: stale
		// cross-position data could still implicate a candidate.
		for _, id := range candidateIDs {
			var remaining int64
			if err := tx.Model(&voteModel{}).
				Where("candidate_id = ?", strings.TrimSpace(id)).
				Count(&remaining).Error; err != nil {
				return err
			}
			if err := tx.Model(&candidateModel{}).
				Where("id = ?", strings.TrimSpace(id)).
				UpdateColumn("total_votes", remaining).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, r.logError("election_repo_reset_position_failed", err,
			"position", strings.TrimSpace(position),
		)
	}
	return deleted, nil
}

func (r *Repository) GetCandidates(ctx context.Context, candidateIDs []string) ([]entities.Candidate, error) {
	if len(candidateIDs) == 0 {
		return nil, nil
	}
	var rows []candidateModel
	err := r.db.WithContext(ctx).
		Where("id IN ?", candidateIDs).
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("election_repo_get_candidates_failed", err,
			"candidate_count", len(candidateIDs),
		)
	}
	return toCandidateEntities(rows), nil
}

func (r *Repository) ListCandidates(ctx context.Context) ([]entities.Candidate, error) {
	var rows []candidateModel
	err := r.db.WithContext(ctx).
		Order("position ASC, name ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("election_repo_list_candidates_failed", err)
	}
	return toCandidateEntities(rows), nil
}

func (r *Repository) ListCandidatesByPosition(ctx context.Context, position string) ([]entities.Candidate, error) {
	var rows []candidateModel
	err := r.db.WithContext(ctx).
		Where("position = ?", strings.TrimSpace(position)).
		Order("name ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, r.logError("election_repo_list_candidates_by_position_failed", err,
			"position", strings.TrimSpace(position),
		)
	}
	return toCandidateEntities(rows), nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "election/voting-engine",
		"layer", "adapter",
		"error", err.Error(),
	)
	fields = append(fields, attrs...)
	r.logger.Error("election repository operation failed", fields...)
	return err
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type voteModel struct {
	ID             string    `gorm:"column:id;primaryKey"`
	VoterRegNumber string    `gorm:"column:voter_reg_number;uniqueIndex:idx_votes_voter_position"`
	CandidateID    string    `gorm:"column:candidate_id"`
	Position       string    `gorm:"column:position;uniqueIndex:idx_votes_voter_position"`
	CreatedAt      time.Time `gorm:"column:created_at"`
}

func (voteModel) TableName() string {
	return "votes"
}

func voteModelFromEntity(vote entities.Vote) voteModel {
	row := voteModel{
		ID:             strings.TrimSpace(vote.VoteID),
		VoterRegNumber: strings.TrimSpace(vote.VoterRegNumber),
		CandidateID:    strings.TrimSpace(vote.CandidateID),
		Position:       strings.TrimSpace(vote.Position),
		CreatedAt:      vote.CreatedAt.UTC(),
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m voteModel) toEntity() entities.Vote {
	return entities.Vote{
		VoteID:         m.ID,
		VoterRegNumber: m.VoterRegNumber,
		CandidateID:    m.CandidateID,
		Position:       m.Position,
		CreatedAt:      m.CreatedAt.UTC(),
	}
}

type candidateModel struct {
	ID         string `gorm:"column:id;primaryKey"`
	Name       string `gorm:"column:name"`
	Department string `gorm:"column:department"`
	Position   string `gorm:"column:position"`
	ImageURL   string `gorm:"column:image_url"`
	TotalVotes int64  `gorm:"column:total_votes"`
}

func (candidateModel) TableName() string {
	return "candidates"
}

func toCandidateEntities(rows []candidateModel) []entities.Candidate {
	items := make([]entities.Candidate, 0, len(rows))
	for _, row := range rows {
		items = append(items, entities.Candidate{
			CandidateID: row.ID,
			Name:        row.Name,
			Department:  row.Department,
			Position:    row.Position,
			ImageURL:    row.ImageURL,
			TotalVotes:  row.TotalVotes,
		})
	}
	return items
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.VoteLedger = (*Repository)(nil)
var _ ports.CandidateRegistry = (*Repository)(nil)
