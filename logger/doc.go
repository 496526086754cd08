// Package logger provides structured logging for streamkit using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields. Libraries receive a
// *Logger by injection and default to Nop so they stay silent.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("query")
//	log.Info("query completed", logger.Fields("operation", "top_ten"))
package logger
