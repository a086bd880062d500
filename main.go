package main

import (
	"flag"
	"log"

	"github.com/adsradar/adsradar-backend/cmd"
)

func main() {
	shouldRunOnce := flag.Bool("once", false, "Run a single tracking run and exit")
	shouldRunScheduler := flag.Bool("scheduler", false, "Run the cron scheduler")
	shouldListAccounts := flag.Bool("accounts", false, "List visible ad accounts and exit")
	shouldExportCsv := flag.Bool("export", false, "Export persisted rows as CSV and exit")
	mode := flag.String("mode", "append", "Run mode for -once: replace or append")
	hours := flag.Int("hours", 0, "Lookback hours for -once; 0 uses WINDOW_HOURS")
	out := flag.String("out", "-", "Output path for -export; - is stdout")
	flag.Parse()

	var err error
	switch {
	case *shouldRunOnce:
		err = cmd.RunTrackingOnce(*mode, *hours)
	case *shouldRunScheduler:
		err = cmd.RunJobScheduler()
	case *shouldListAccounts:
		err = cmd.RunListAccounts()
	case *shouldExportCsv:
		err = cmd.RunCsvExport(*out)
	default:
		flag.Usage()
	}
	if err != nil {
		log.Fatal(err)
	}
}
