package generator

import "time"

// Stats summarizes one generation run.
type Stats struct {
	FilesDiscovered int
	ModulesBuilt    int
	ParseFailures   int
	DocsWritten     int
	UnresolvedNames int
	Warnings        []string
	ProcessingTime  time.Duration
}

// ProgressReporter receives pipeline progress callbacks. Implementations
// must tolerate being called from a single goroutine only.
type ProgressReporter interface {
	OnDiscoveryStart()
	OnDiscoveryComplete(files int)
	OnFileProcessingStart(totalFiles int)
	OnFileProcessed(fileName string)
	OnWritingDocs()
	OnComplete(stats *Stats)
}

// NoopProgressReporter discards all progress callbacks.
type NoopProgressReporter struct{}

func (NoopProgressReporter) OnDiscoveryStart()               {}
func (NoopProgressReporter) OnDiscoveryComplete(files int)   {}
func (NoopProgressReporter) OnFileProcessingStart(total int) {}
func (NoopProgressReporter) OnFileProcessed(fileName string) {}
func (NoopProgressReporter) OnWritingDocs()                  {}
func (NoopProgressReporter) OnComplete(stats *Stats)         {}
