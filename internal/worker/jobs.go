package worker

import (
	"context"
	"time"

	"backoffice-service/internal/util"

	"go.uber.org/zap"
)

// Simulated background jobs. These stand in for real mail/report
// integrations: they log progress, take time, and report nothing back.

// SendEmailTask simulates dispatching an email notification.
func SendEmailTask(to, subject, body string) Task {
	return Task{
		Kind: "send_email",
		Run: func(ctx context.Context) {
			logger := util.GetLogger()
			logger.Info("Sending email", zap.String("to", to), zap.String("subject", subject))
			sleep(ctx, 2*time.Second)
			logger.Info("Email sent", zap.String("to", to))
		},
	}
}

// ProcessOrderTask simulates order post-processing: stock check,
// reservation, waybill.
func ProcessOrderTask(orderID int64) Task {
	return Task{
		Kind: "process_order",
		Run: func(ctx context.Context) {
			logger := util.GetLogger()
			logger.Info("Processing order", zap.Int64("order_id", orderID))

			steps := []string{"checking stock", "reserving items", "creating waybill"}
			for _, step := range steps {
				sleep(ctx, time.Second)
				logger.Info("Order processing step",
					zap.Int64("order_id", orderID), zap.String("step", step))
			}

			logger.Info("Order processed", zap.Int64("order_id", orderID))
		},
	}
}

// GenerateReportTask simulates building a report of the given type.
func GenerateReportTask(reportType string) Task {
	return Task{
		Kind: "generate_report",
		Run: func(ctx context.Context) {
			logger := util.GetLogger()
			logger.Info("Generating report", zap.String("report_type", reportType))

			for progress := 20; progress <= 100; progress += 20 {
				sleep(ctx, time.Second)
				logger.Info("Report progress",
					zap.String("report_type", reportType), zap.Int("percent", progress))
			}

			logger.Info("Report generated", zap.String("report_type", reportType))
		},
	}
}

func sleep(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
