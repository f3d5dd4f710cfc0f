package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"semcore/internal/trace"
)

var (
	activeTracer trace.Tracer = trace.Nop
	heartbeat    *trace.Heartbeat
)

// setupTracing builds the tracer from the trace flags, falling back to the
// manifest for level and mode, and attaches it to the command context.
func setupTracing(cmd *cobra.Command, s *settings) error {
	flags := cmd.Flags()
	output, _ := flags.GetString("trace")
	levelName, _ := flags.GetString("trace-level")
	modeName, _ := flags.GetString("trace-mode")
	formatName, _ := flags.GetString("trace-format")
	ringSize, _ := flags.GetInt("trace-ring-size")
	beat, _ := flags.GetDuration("trace-heartbeat")

	if !flags.Changed("trace-level") && s.traceLevel != "" {
		levelName = s.traceLevel
	}
	if !flags.Changed("trace-mode") && s.traceMode != "" {
		modeName = s.traceMode
	}

	level, err := trace.ParseLevel(levelName)
	if err != nil {
		return err
	}
	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}
	if level > trace.LevelError && output == "" {
		output = "-"
	}
	mode, err := trace.ParseMode(modeName)
	if err != nil {
		return err
	}
	format, err := trace.ParseFormat(formatName)
	if err != nil {
		return err
	}
	t, err := trace.New(trace.Config{
		Level:      level,
		Mode:       mode,
		Format:     format,
		OutputPath: output,
		RingSize:   ringSize,
		Heartbeat:  beat,
	})
	if err != nil {
		return fmt.Errorf("create tracer: %w", err)
	}
	activeTracer = t
	heartbeat = trace.StartHeartbeat(t, beat)
	log.Debugf("tracing at %s to %q (%s)", level, output, mode)
	cmd.SetContext(trace.WithTracer(cmd.Context(), t))
	return nil
}

// teardownTracing stops the heartbeat and closes the tracer. After a
// failure the ring, if any, is dumped to stderr first.
func teardownTracing(failed bool) error {
	heartbeat.Stop()
	heartbeat = nil
	t := activeTracer
	activeTracer = trace.Nop
	if ring := trace.Ring(t); ring != nil && failed {
		fmt.Fprintln(os.Stderr, "last trace events:")
		if err := ring.Dump(os.Stderr, trace.FormatText); err != nil {
			return err
		}
	}
	return t.Close()
}
