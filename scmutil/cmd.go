/*
Copyright © 2026 the SCM authors.
This file is part of SCM.

SCM is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

SCM is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with SCM.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package scmutil wires the simple climate model to its configuration file,
// command-line interface, and log output.
package scmutil

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/scm"
	"github.com/spf13/cobra"
)

var logger *logrus.Logger

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	})

	Root.AddCommand(runCmd)
	Root.AddCommand(versionCmd)
	Root.PersistentFlags().StringVar(&configFile, "config", "./scm.toml",
		"configuration file location")
	runCmd.Flags().StringSliceVar(&overrides, "set", nil,
		"override a model constant, e.g. --set ClimateSensitivity=1.2")
}

var (
	configFile string
	overrides  []string
)

// Root is the main command.
var Root = &cobra.Command{
	Use:   "scm",
	Short: "A simple climate model.",
	Long: `A pulse-response simple climate model that converts greenhouse-gas
and aerosol emissions into global mean surface temperature change
and sea level change.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of SCM",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("SCM v%s\n", scm.Version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model",
	Long: `Run the simple climate model for the year range given in the
configuration file and write the requested output series.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := ReadConfigFile(configFile)
		if err != nil {
			return err
		}
		if err := config.ApplyOverrides(overrides); err != nil {
			return err
		}
		return Run(cmd.OutOrStdout(), config)
	},
}

// Run carries out a complete simulation as described by config, writing
// status messages to w.
func Run(w io.Writer, config *ConfigData) error {
	logWriter := w
	if config.LogFile != "" {
		logfile, err := os.Create(config.LogFile)
		if err != nil {
			return fmt.Errorf("scm: problem creating log file: %v", err)
		}
		defer logfile.Close()
		logWriter = io.MultiWriter(w, logfile)
	}
	logger.SetOutput(logWriter)

	logger.Infof("Reading emissions from %s...", config.EmissionsFile)
	emis, err := scm.ReadEmissionsFile(config.EmissionsFile,
		config.Model.StartYear, config.Model.EndYear)
	if err != nil {
		return err
	}

	o, err := scm.NewOutputter(config.OutputFile, config.OutputVariables, nil)
	if err != nil {
		return err
	}

	cleanupFuncs := []scm.ModelManipulator{o.Output()}
	if len(config.PlotFiles) > 0 {
		cleanupFuncs = append(cleanupFuncs, scm.SavePlots(config.PlotFiles))
	}

	m := &scm.SCM{
		Config:    &config.Model,
		Emissions: emis,
		InitFuncs: append(scm.DefaultInitFuncs(), o.CheckOutputVars()),
		RunFuncs: append(scm.DefaultRunFuncs(),
			scm.Log(logWriter, config.LogInterval)),
		CleanupFuncs: cleanupFuncs,
	}

	logger.Infof("Simulating years %d–%d...", config.Model.StartYear, config.Model.EndYear)
	if err := m.Init(); err != nil {
		return err
	}
	if err := m.Run(); err != nil {
		return err
	}
	if err := m.Cleanup(); err != nil {
		return err
	}
	logger.Infof("Wrote results to %s.", config.OutputFile)
	return nil
}
