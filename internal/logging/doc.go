// Package logging provides structured logging for wavetap.
//
// This package wraps zap logger with convenience functions for common logging
// patterns used throughout the tool. It provides both general logging functions
// and specialized functions for discovery and sync logging needs.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed debugging info (probe datagrams, descriptor parsing)
//   - Info: Normal operations (devices synced, sync results)
//   - Warn: Non-fatal issues (unreachable devices, skipped descriptors)
//   - Error: Fatal issues (startup failures, critical errors)
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("Device synced",
//	    zap.String("ip", "192.168.1.100"),
//	    zap.String("device_id", "9884E3AB1234"),
//	)
//
// # Specialized Logging
//
// The package provides domain-specific logging functions:
//
//	logging.LogProbe(searchTarget, window, len(locations))
//	logging.LogDiscovery("ssdp", "descriptor_skipped", zap.String("location", loc))
//	logging.LogDeviceSync(ip, deviceID, err)
//	logging.LogSyncResult(discovered, synced, failed, elapsed)
//
// # Configuration
//
// Logging is silent by default so command output stays clean. Set the
// WAVETAP_LOG_LEVEL environment variable to enable it:
//
//	if err := logging.InitializeFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap logger
// handles synchronization automatically.
package logging
