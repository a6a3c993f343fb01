// entrygen writes the entry.tp plugin descriptor that TouchPortal reads
// to build its UI and command registry for this plugin.
package main

import (
	"encoding/json"
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"TPWebsockets/internals/plugin"
)

func main() {
	out := flag.String("o", "entry.tp", "Output path for the generated descriptor")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors: false,
		FullTimestamp: true,
	})

	data, err := json.MarshalIndent(plugin.BuildEntry(), "", "  ")
	if err != nil {
		logger.WithError(err).Fatal("Failed to marshal descriptor")
	}
	if err := os.WriteFile(*out, append(data, '\n'), 0644); err != nil {
		logger.WithError(err).Fatal("Failed to write descriptor")
	}

	logger.WithField("path", *out).Info("Wrote plugin descriptor")
}
