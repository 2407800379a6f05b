package tasks

import (
	"context"
	"fmt"
	"log"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"housewolf/portal/internal/config"
	"housewolf/portal/internal/services"
)

// TaskType defines the type of a background task.
const (
	TypeListingPurge = "listing:purge"
)

// --- Task Client (Enqueuing tasks) ---

func NewClient(rdb *redis.Client) *asynq.Client {
	clientOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}
	return asynq.NewClient(clientOpt)
}

// EnqueueListingPurge schedules the first purge run. Subsequent runs are
// chained by the handler itself.
func EnqueueListingPurge(client *asynq.Client, cfg *config.Config) error {
	task := asynq.NewTask(TypeListingPurge, nil)
	_, err := client.Enqueue(task,
		asynq.ProcessIn(cfg.ListingPurgeInterval),
		asynq.Queue("low"),
	)
	if err != nil {
		return fmt.Errorf("failed to enqueue listing purge task: %w", err)
	}
	return nil
}

// --- Task Server (Processing tasks) ---

// TaskProcessor handles the processing of tasks.
// It holds dependencies needed by task handlers.
type TaskProcessor struct {
	cfg            *config.Config
	listingService services.IListingService
	taskClient     *asynq.Client
}

func NewTaskProcessor(cfg *config.Config, listingService services.IListingService, taskClient *asynq.Client) *TaskProcessor {
	return &TaskProcessor{
		cfg:            cfg,
		listingService: listingService,
		taskClient:     taskClient,
	}
}

// SetupServer configures an Asynq server and the handler mux. The caller owns
// running and shutting it down.
func SetupServer(rdb *redis.Client, processor *TaskProcessor) (*asynq.Server, *asynq.ServeMux) {
	serverOpt := asynq.RedisClientOpt{
		Addr:     rdb.Options().Addr,
		Password: rdb.Options().Password,
		DB:       rdb.Options().DB,
	}

	srv := asynq.NewServer(
		serverOpt,
		asynq.Config{
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				fmt.Printf("[Asynq Error] Task Type: %s, Error: %v\n", task.Type(), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeListingPurge, processor.HandleListingPurgeTask)

	return srv, mux
}

// --- Task Handlers ---

// HandleListingPurgeTask deletes removed listings older than the retention
// window and re-enqueues itself for the next interval.
func (p *TaskProcessor) HandleListingPurgeTask(ctx context.Context, t *asynq.Task) error {
	deleted, err := p.listingService.PurgeRemoved(ctx, p.cfg.ListingPurgeRetention)
	if err != nil {
		return fmt.Errorf("listing purge failed: %w", err)
	}
	if deleted > 0 {
		log.Printf("Listing purge: deleted %d removed listings older than %v", deleted, p.cfg.ListingPurgeRetention)
	}

	// Chain the next run.
	if p.taskClient != nil {
		next := asynq.NewTask(TypeListingPurge, nil)
		_, err = p.taskClient.EnqueueContext(ctx, next,
			asynq.ProcessIn(p.cfg.ListingPurgeInterval),
			asynq.Queue("low"),
		)
		if err != nil {
			log.Printf("WARN: failed to re-enqueue listing purge: %v", err)
		}
	}
	return nil
}
