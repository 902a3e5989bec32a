package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

var (
	errorLogger *log.Logger
	debugLogger *log.Logger
)

func logDir() string {
	return filepath.Join(baseDir, "logs")
}

func openLog(kind string) io.Writer {
	dir := logDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("could not create log directory: %v\n", err)
		return os.Stdout
	}
	ts := time.Now().Format("20060102-150405")
	f, err := os.Create(filepath.Join(dir, fmt.Sprintf("%s-%s.log", kind, ts)))
	if err != nil {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, f)
}

func setupLogging(debug bool) {
	w := openLog("error")
	errorLogger = log.New(w, "", log.LstdFlags)
	log.SetOutput(w)
	setDebugLogging(debug)
}

// logError records the error and shows it in the viewer's notice line.
func logError(format string, v ...interface{}) {
	if errorLogger != nil {
		errorLogger.Printf(format, v...)
	}
	addNotice(fmt.Sprintf(format, v...))
}

func logDebug(format string, v ...interface{}) {
	if debugLogger != nil {
		debugLogger.Printf(format, v...)
	}
}

func setDebugLogging(enabled bool) {
	if enabled {
		debugLogger = log.New(openLog("debug"), "", log.LstdFlags)
	} else {
		debugLogger = nil
	}
}
