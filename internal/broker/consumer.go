package broker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MikeSquared-Agency/Rubric/internal/hermes"
	"github.com/MikeSquared-Agency/Rubric/internal/workbook"
)

var errNoWorkbook = errors.New("grade request has no workbook")

// Start subscribes to grade requests. At most cfg.Grading.Workers requests
// are graded at once; further deliveries wait for a free slot.
func (b *Broker) Start(ctx context.Context) error {
	if b.hermes == nil {
		return nil
	}
	err := b.hermes.QueueSubscribe(hermes.SubjectGradeRequest, hermes.QueueGraders, func(_ string, data []byte) {
		b.dispatch(ctx, data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", hermes.SubjectGradeRequest, err)
	}
	return nil
}

// Stop rejects further requests and waits for in-flight gradings.
func (b *Broker) Stop() {
	b.stopOnce.Do(func() {
		b.mu.Lock()
		b.stopped = true
		close(b.stopCh)
		b.mu.Unlock()
	})
	b.wg.Wait()
}

func (b *Broker) dispatch(ctx context.Context, data []byte) {
	select {
	case b.sem <- struct{}{}:
	case <-b.stopCh:
		b.logger.Warn("broker stopped, dropping grade request")
		return
	case <-ctx.Done():
		return
	}

	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		<-b.sem
		b.logger.Warn("broker stopped, dropping grade request")
		return
	}
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()
		defer func() { <-b.sem }()
		b.handleGradeRequest(ctx, data)
	}()
}

func (b *Broker) handleGradeRequest(ctx context.Context, data []byte) {
	var req hermes.GradeRequestEvent
	if err := json.Unmarshal(data, &req); err != nil {
		b.logger.Warn("invalid grade request event", "error", err)
		b.publishFailure(req, err)
		return
	}
	if req.Source == "" {
		req.Source = SourceNATS
	}
	if len(req.Workbook) == 0 {
		b.publishFailure(req, errNoWorkbook)
		return
	}

	wb, err := workbook.DecodeJSON(bytes.NewReader(req.Workbook))
	if err != nil {
		b.logger.Warn("undecodable workbook in grade request", "name", req.Name, "error", err)
		b.publishFailure(req, err)
		return
	}
	if req.Name != "" {
		wb.Name = req.Name
	}

	if _, err := b.Submit(ctx, req.Source, wb); err != nil {
		b.logger.Error("failed to archive graded workbook", "name", wb.Name, "error", err)
	}
}

func (b *Broker) publishFailure(req hermes.GradeRequestEvent, cause error) {
	if b.hermes == nil {
		return
	}
	err := b.hermes.Publish(hermes.SubjectGradeFailed, hermes.GradeFailedEvent{
		Name:   req.Name,
		Source: req.Source,
		Error:  cause.Error(),
	})
	if err != nil {
		b.logger.Warn("failed to publish grade failure", "name", req.Name, "error", err)
	}
}
