package httpadapter

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"ballotbox/contexts/election/voting-engine/application/commands"
	"ballotbox/contexts/election/voting-engine/application/queries"
	"ballotbox/contexts/election/voting-engine/application/workers"
	"ballotbox/contexts/election/voting-engine/domain/entities"
	httptransport "ballotbox/contexts/election/voting-engine/transport/http"
)

type Handler struct {
	Ballots    commands.BallotUseCase
	Resets     commands.ResetUseCase
	Tallies    queries.TallyQueryUseCase
	Reconciler workers.TallyReconciler
	Logger     *slog.Logger
}

func (h Handler) CastVotesHandler(
	ctx context.Context,
	voterRegNumber string,
	req httptransport.CastVotesRequest,
) (httptransport.CastVotesResponse, error) {
	entries := make([]commands.BatchEntry, 0, len(req.Votes)+1)
	if req.CandidateID != "" {
		entries = append(entries, commands.BatchEntry{
			CandidateID: req.CandidateID,
			Position:    req.Position,
		})
	}
	for _, vote := range req.Votes {
		entries = append(entries, commands.BatchEntry{
			CandidateID: vote.CandidateID,
			Position:    vote.Position,
		})
	}

	result, err := h.Ballots.CastVotes(ctx, commands.CastVotesCommand{
		VoterRegNumber: voterRegNumber,
		Demo:           req.IsDemo,
		Entries:        entries,
	})
	if err != nil {
		return httptransport.CastVotesResponse{}, err
	}

	message := "Vote submission complete."
	if !result.Applied {
		message = "Some votes could not be processed. Please check the results."
	}
	return httptransport.CastVotesResponse{
		Success: result.Applied,
		Message: message,
		Results: mapResults(result.Results),
	}, nil
}

func (h Handler) SummaryHandler(ctx context.Context) (httptransport.SummaryResponse, error) {
	summary, err := h.Tallies.Summary(ctx)
	if err != nil {
		return nil, err
	}
	resp := make(httptransport.SummaryResponse, len(summary))
	for position, tallies := range summary {
		items := make([]httptransport.CandidateTallyItem, 0, len(tallies))
		for _, tally := range tallies {
			items = append(items, httptransport.CandidateTallyItem{
				CandidateID: tally.CandidateID,
				Name:        tally.Name,
				Department:  tally.Department,
				Image:       tally.ImageURL,
				TotalVotes:  tally.TotalVotes,
				DemoVotes:   tally.DemoVotes,
			})
		}
		resp[position] = items
	}
	return resp, nil
}

func (h Handler) RealtimeCountsHandler(ctx context.Context, candidateIDs []string) (httptransport.CountsResponse, error) {
	tallies, err := h.Tallies.RealtimeCounts(ctx, candidateIDs)
	if err != nil {
		return httptransport.CountsResponse{}, err
	}
	counts := make([]httptransport.CandidateCountItem, 0, len(tallies))
	for _, tally := range tallies {
		counts = append(counts, httptransport.CandidateCountItem{
			CandidateID:   tally.CandidateID,
			CandidateName: tally.Name,
			Position:      tally.Position,
			Department:    tally.Department,
			VoteCount:     tally.TotalVotes,
			DemoVotes:     tally.DemoVotes,
		})
	}
	return httptransport.CountsResponse{
		Success:   true,
		Counts:    counts,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h Handler) ResetAllHandler(ctx context.Context) (httptransport.ResetResponse, error) {
	report, err := h.Resets.ResetAll(ctx)
	if err != nil {
		return httptransport.ResetResponse{}, err
	}
	return httptransport.ResetResponse{
		Success:          true,
		Message:          "All votes have been reset.",
		DeletedVotes:     report.DeletedVotes,
		DeletedDemoVotes: report.DeletedDemoVotes,
	}, nil
}

func (h Handler) ResetPositionHandler(ctx context.Context, position string) (httptransport.ResetResponse, error) {
	report, err := h.Resets.ResetPosition(ctx, position)
	if err != nil {
		return httptransport.ResetResponse{}, err
	}
	return httptransport.ResetResponse{
		Success:          true,
		Message:          fmt.Sprintf("Votes for position %q have been reset.", position),
		DeletedVotes:     report.DeletedVotes,
		DeletedDemoVotes: report.DeletedDemoVotes,
	}, nil
}

func (h Handler) ResetDemoHandler(ctx context.Context) (httptransport.ResetResponse, error) {
	report, err := h.Resets.ResetDemo(ctx)
	if err != nil {
		return httptransport.ResetResponse{}, err
	}
	return httptransport.ResetResponse{
		Success:          true,
		Message:          "Demo votes have been reset.",
		DeletedDemoVotes: report.DeletedDemoVotes,
	}, nil
}

func (h Handler) VerifyHandler(ctx context.Context) (httptransport.VerifyResponse, error) {
	report, err := h.Reconciler.RunOnce(ctx)
	if err != nil {
		return httptransport.VerifyResponse{}, err
	}
	message := "All vote counts are accurate. No discrepancies found."
	if report.SyncedCount > 0 {
		message = fmt.Sprintf("Verified and synced %d candidate vote count(s).", report.SyncedCount)
	}
	discrepancies := make([]httptransport.DiscrepancyItem, 0, len(report.Discrepancies))
	for _, item := range report.Discrepancies {
		discrepancies = append(discrepancies, httptransport.DiscrepancyItem{
			CandidateID: item.CandidateID,
			StoredCount: item.StoredCount,
			ActualCount: item.ActualCount,
		})
	}
	return httptransport.VerifyResponse{
		Success:       true,
		Message:       message,
		Synced:        report.SyncedCount,
		Discrepancies: discrepancies,
	}, nil
}

func mapResults(results []entities.PositionResult) []httptransport.VoteResult {
	items := make([]httptransport.VoteResult, 0, len(results))
	for _, result := range results {
		items = append(items, httptransport.VoteResult{
			Position:    result.Position,
			CandidateID: result.CandidateID,
			Status:      string(result.Status),
			Message:     result.Message,
			VoteCount:   result.VoteCount,
		})
	}
	return items
}
