// Package observable wraps command and query handlers with metrics, tracing and logging
// while the wrapped handlers keep only the circulation workflow.
//
// Wrappers are applied at wiring time:
//
//	coreHandler, err := checkoutbook.NewCommandHandler(recordStore)
//
//	handler, err := observable.NewCommandWrapper[checkoutbook.Command](
//		coreHandler,
//		observable.WithCommandMetrics[checkoutbook.Command](metricsCollector),
//		observable.WithCommandTracing[checkoutbook.Command](tracingCollector),
//		observable.WithCommandContextualLogging[checkoutbook.Command](contextualLogger),
//	)
//
// Outcomes are classified with shell.ClassifyError. Business rejections are reported with status
// "rejected" and logged at warn level, everything else that fails is logged at error level.
package observable
