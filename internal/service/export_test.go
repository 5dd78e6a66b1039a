package service

// SetExportLimit lowers the export cap for the duration of a test.
func SetExportLimit(n int) (restore func()) {
	prev := exportLimit
	exportLimit = n
	return func() { exportLimit = prev }
}
