package workers

import (
	"context"
	"log"
	"time"

	"github.com/streakmate/streakmate-api/internal/core/domain"
)

type GroupRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Group, error)
}

type UserRepository interface {
	ListByGroupID(ctx context.Context, groupID string) ([]*domain.User, error)
}

type ActivityRepository interface {
	ListByUserID(ctx context.Context, userID string) ([]*domain.Activity, error)
}

// SnapshotStore receives freshly ranked leaderboards (typically a Redis
// cache). Reads never depend on the worker; it only keeps snapshots warm.
type SnapshotStore interface {
	Set(ctx context.Context, leaderboard *domain.Leaderboard) error
}

type RefreshJob struct {
	GroupID string
}

// LeaderboardWorker re-runs the leaderboard ranking whenever the underlying
// activity or membership data changes, and pushes the result to the snapshot
// store. The ranking itself stays pure and synchronous; this is only the
// "data changed" trigger around it.
type LeaderboardWorker struct {
	groupRepo    GroupRepository
	userRepo     UserRepository
	activityRepo ActivityRepository
	store        SnapshotStore
	jobs         chan RefreshJob

	now func() time.Time
}

func NewLeaderboardWorker(gRepo GroupRepository, uRepo UserRepository, aRepo ActivityRepository, store SnapshotStore) *LeaderboardWorker {
	return &LeaderboardWorker{
		groupRepo:    gRepo,
		userRepo:     uRepo,
		activityRepo: aRepo,
		store:        store,
		jobs:         make(chan RefreshJob, 100),
		now:          time.Now,
	}
}

func (w *LeaderboardWorker) Start(ctx context.Context) {
	go func() {
		log.Println("Leaderboard Worker started in background...")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				log.Println("Leaderboard Worker shutting down...")
				return
			}
		}
	}()
}

func (w *LeaderboardWorker) Enqueue(groupID string) {
	if groupID == "" {
		return
	}
	select {
	case w.jobs <- RefreshJob{GroupID: groupID}:
	default:
		log.Printf("Leaderboard Worker queue full! Dropping job for group %s", groupID)
	}
}

func (w *LeaderboardWorker) processJob(ctx context.Context, job RefreshJob) {
	if w.store == nil {
		return
	}

	group, err := w.groupRepo.GetByID(ctx, job.GroupID)
	if err != nil {
		log.Printf("Worker Error fetching group %s: %v", job.GroupID, err)
		return
	}

	members, err := w.userRepo.ListByGroupID(ctx, job.GroupID)
	if err != nil {
		log.Printf("Worker Error fetching members for %s: %v", job.GroupID, err)
		return
	}

	activitiesByUser := make(map[string][]*domain.Activity, len(members))
	for _, m := range members {
		activities, err := w.activityRepo.ListByUserID(ctx, m.ID)
		if err != nil {
			// One member's unreadable history must not sink the whole
			// refresh; they rank with a zero streak this round.
			log.Printf("Worker Error fetching activities for %s: %v", m.ID, err)
			continue
		}
		activitiesByUser[m.ID] = activities
	}

	leaderboard := domain.RankMembers(group, members, activitiesByUser, w.now())

	if err := w.store.Set(ctx, leaderboard); err != nil {
		log.Printf("Worker Failed to store leaderboard for %s: %v", job.GroupID, err)
		return
	}

	log.Printf("Leaderboard refreshed for %s: %d members", group.Name, len(leaderboard.Entries))
}
