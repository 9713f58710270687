package worker

import (
	"context"
	"encoding/json"
	"time"

	"repricer/internal/service"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueRepricing = "jobs:repricing"

// Job types consumed from the repricing queue.
const (
	JobRunAll  = "run_all"
	JobRunRule = "run_rule"
)

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type runRulePayload struct {
	RuleID string `json:"rule_id"`
}

// Dispatcher enqueues async repricing jobs into a Redis list.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueRunAll pushes a run-all-active-rules job.
func (d *Dispatcher) EnqueueRunAll(ctx context.Context) error {
	return d.enqueue(ctx, JobRunAll, nil)
}

// EnqueueRunRule pushes a single-rule run job.
func (d *Dispatcher) EnqueueRunRule(ctx context.Context, ruleID uuid.UUID) error {
	return d.enqueue(ctx, JobRunRule, runRulePayload{RuleID: ruleID.String()})
}

func (d *Dispatcher) enqueue(ctx context.Context, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueRepricing, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the repricing
// queue. Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, pricing service.PricingService, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, pricing, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, pricing service.PricingService, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueRepricing).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, pricing, result[1])
		}
	}
}

func processJob(ctx context.Context, pricing service.PricingService, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal repricing job")
		return
	}

	switch job.Type {
	case JobRunAll:
		report, err := pricing.RunAllActive(ctx)
		if err != nil {
			log.Error().Err(err).Msg("run-all repricing job failed")
			return
		}
		log.Info().
			Int("succeeded", report.Succeeded).
			Int("failed", report.Failed).
			Msg("run-all repricing job complete")

	case JobRunRule:
		var p runRulePayload
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			log.Error().Err(err).Msg("invalid run_rule payload")
			return
		}
		ruleID, err := uuid.Parse(p.RuleID)
		if err != nil {
			log.Error().Str("rule_id", p.RuleID).Msg("invalid rule id in job payload")
			return
		}
		report, err := pricing.RunRule(ctx, ruleID)
		if err != nil {
			log.Error().Err(err).Str("rule_id", p.RuleID).Msg("run-rule repricing job failed")
			return
		}
		log.Info().
			Str("rule_id", p.RuleID).
			Int("succeeded", report.Succeeded).
			Int("failed", report.Failed).
			Msg("run-rule repricing job complete")

	default:
		log.Warn().Str("type", job.Type).Msg("unknown repricing job type")
	}
}
