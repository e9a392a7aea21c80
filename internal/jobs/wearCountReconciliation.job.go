package jobs

import (
	"context"

	"reworn/internal/database"
	"reworn/internal/repositories"
	"reworn/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

// WearCountReconciliationJob recounts wear logs per item and repairs any
// drift in the denormalized wear_count column. Drift should never happen in
// normal operation since increments run in the same transaction as log
// inserts, but a nightly recount keeps the counter trustworthy.
type WearCountReconciliationJob struct {
	itemRepo repositories.ItemRepository
	logRepo  repositories.WearLogRepository
	db       database.DB
	log      logger.Logger
	schedule services.Schedule
}

func NewWearCountReconciliationJob(
	repos repositories.Repository,
	db database.DB,
	schedule services.Schedule,
) *WearCountReconciliationJob {
	log := logger.New("wearCountReconciliationJob")
	log.Info("Creating new wear count reconciliation job", "schedule", schedule)

	return &WearCountReconciliationJob{
		itemRepo: repos.Item,
		logRepo:  repos.WearLog,
		db:       db,
		log:      log,
		schedule: schedule,
	}
}

func (j *WearCountReconciliationJob) Name() string {
	return "NightlyWearCountReconciliation"
}

func (j *WearCountReconciliationJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	log.Info("Starting wear count reconciliation")

	tx := j.db.SQLWithContext(ctx)

	items, err := j.itemRepo.GetAllItems(ctx, tx)
	if err != nil {
		return log.Err("failed to load items", err)
	}

	repaired := 0
	for _, item := range items {
		count, err := j.logRepo.CountLogsForItem(ctx, tx, item.ID)
		if err != nil {
			return log.Err("failed to count logs for item", err, "itemID", item.ID)
		}

		actual := int(count)
		if item.WearCount == actual {
			continue
		}

		log.Warn(
			"wear count drift detected",
			"itemID", item.ID,
			"stored", item.WearCount,
			"actual", actual,
		)

		if err := j.itemRepo.SetWearCount(ctx, tx, item.ID, actual); err != nil {
			return log.Err("failed to repair wear count", err, "itemID", item.ID)
		}
		repaired++
	}

	log.Info("Wear count reconciliation completed", "items", len(items), "repaired", repaired)
	return nil
}

func (j *WearCountReconciliationJob) Schedule() services.Schedule {
	return j.schedule
}
