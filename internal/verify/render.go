package verify

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/saturogrp-blip/Grand/internal/config"
	"github.com/saturogrp-blip/Grand/internal/ui/theme"
)

const (
	bannerTitle  = "Grand Interview Curator System - Verification Tool"
	summaryTitle = "VERIFICATION SUMMARY"
	summaryWidth = 44
)

// Hints feed the remedies printed after a failed run.
type Hints struct {
	StartCommand   string
	InstallCommand string
	ProjectDir     string
	BackendFile    string
	DataDir        string
}

// HintsFrom derives the hints from the verifier configuration.
func HintsFrom(cfg config.VerifyConfig) Hints {
	return Hints{
		StartCommand:   cfg.StartCommand,
		InstallCommand: cfg.InstallCommand,
		ProjectDir:     cfg.ProjectDir,
		BackendFile:    cfg.BackendFile,
		DataDir:        cfg.DataDir,
	}
}

func renderBanner(text string) string {
	return theme.Banner.Render(theme.Title.Render(text))
}

func renderResult(r Result) string {
	switch r.Outcome.Level {
	case LevelPass:
		return theme.Pass.Render("✓ " + r.Outcome.Message)
	case LevelWarn:
		return theme.Warn.Render("⚠ " + r.Outcome.Message)
	default:
		return theme.Fail.Render("✗ " + r.Outcome.Message)
	}
}

func renderSummary(rep *Report) string {
	lines := []string{
		summaryTitle,
		strings.Repeat("─", summaryWidth),
		fmt.Sprintf("Passed: %d", rep.Passed),
		fmt.Sprintf("Failed: %d", rep.Failed),
	}
	return theme.Banner.Render(strings.Join(lines, "\n"))
}

func renderFooter(rep *Report, h Hints) string {
	var b strings.Builder
	if rep.OK() {
		b.WriteString(theme.Pass.Render("✅ All checks passed! You can now run the backend:"))
		b.WriteString("\n\n   ")
		b.WriteString(theme.Command.Render(h.StartCommand))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(theme.Fail.Render("❌ Some checks failed. Please fix the issues above."))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render("Common fixes:"))
	b.WriteString("\n")

	n := 0
	hint := func(title, cmd string) {
		n++
		fmt.Fprintf(&b, "\n%d. %s\n", n, theme.Body.Render(title))
		if cmd != "" {
			fmt.Fprintf(&b, "   %s\n", theme.Command.Render(cmd))
		}
	}

	if h.InstallCommand != "" {
		hint("Install dependencies:", h.InstallCommand)
	}
	if h.ProjectDir != "" {
		hint("Make sure you're in the correct directory:", fmt.Sprintf("cd %q", h.ProjectDir))
	} else {
		hint(fmt.Sprintf("Make sure you're in the directory that contains %s", h.BackendFile), "")
	}
	hint(fmt.Sprintf("Check file permissions on %s/ folder", filepath.ToSlash(h.DataDir)), "")

	return b.String()
}
