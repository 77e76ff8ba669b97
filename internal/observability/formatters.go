// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/skillgap-ai/skillgap-api/internal/gaps"
	"github.com/skillgap-ai/skillgap-api/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintExtractedSkills outputs the skills detected in the analysis inputs.
func (p *Printer) PrintExtractedSkills(skills []string) {
	if len(skills) == 0 {
		p.printBox("EXTRACTED SKILLS", "No skills detected")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Detected %d skills:\n\n", len(skills)))

	count := min(len(skills), maxItemsToShow*2)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", skills[i]))
	}
	if len(skills) > count {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(skills)-count))
	}

	p.printBox("EXTRACTED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGapSummary outputs the aggregate gap statistics for an analysis.
func (p *Printer) PrintGapSummary(summary *types.GapSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills analyzed:   %d\n", summary.TotalSkills))
	sb.WriteString(fmt.Sprintf("Critical gaps:     %d\n", summary.CriticalGaps))
	sb.WriteString(fmt.Sprintf("Essential gaps:    %d\n", summary.EssentialGaps))
	sb.WriteString(fmt.Sprintf("Competitive gaps:  %d\n", summary.CompetitiveGaps))
	sb.WriteString(fmt.Sprintf("Strengths:         %d\n", summary.Strengths))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Average gap:       %.1f points\n", summary.AverageGap))
	sb.WriteString(fmt.Sprintf("Readiness score:   %d / 100", summary.ReadinessScore))
	if summary.LargestGapSkill != "" {
		sb.WriteString(fmt.Sprintf("\nLargest gap:       %s (%d points)",
			summary.LargestGapSkill, summary.LargestGapPoints))
	}

	p.printBox("GAP SUMMARY", sb.String())
}

// PrintClassifiedGaps outputs the per-bucket gap breakdown.
func (p *Printer) PrintClassifiedGaps(classified *gaps.Classified) {
	if classified == nil || classified.Total() == 0 {
		return
	}

	var sb strings.Builder

	printBucket := func(label string, records []types.SkillGapRecord) {
		if len(records) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("%s (%d):\n", label, len(records)))
		count := min(len(records), maxItemsToShow)
		for i := 0; i < count; i++ {
			r := records[i]
			sb.WriteString(fmt.Sprintf("  • %s: %d → %d (gap %d)\n",
				r.Skill, r.CurrentLevel, r.RequiredLevel, r.Gap()))
		}
		if len(records) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(records)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	printBucket("Critical", classified.Critical)
	printBucket("Essential", classified.Essential)
	printBucket("Competitive", classified.Competitive)
	printBucket("Strengths", classified.Strengths)

	p.printBox("SKILL GAPS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedCourses outputs the top N recommended courses with scores.
func (p *Printer) PrintRankedCourses(courses []types.CourseRecord) {
	if len(courses) == 0 {
		p.printBox("RECOMMENDED COURSES", "No matching courses found")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total courses matched: %d\n\n", len(courses)))

	count := min(len(courses), maxItemsToShow)
	for i := 0; i < count; i++ {
		course := courses[i]
		title := course.Title
		if len(title) > 48 {
			title = title[:45] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    Score: %.1f  (match %.0f, demand %.0f)\n",
			course.CompositeScore(), course.MatchScore, course.AIInsights.MarketDemand))
		if len(course.Skills) > 0 {
			skills := strings.Join(course.Skills, ", ")
			if len(skills) > 40 {
				skills = skills[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Skills: %s\n", skills))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(courses) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more courses", len(courses)-maxItemsToShow))
	}

	p.printBox("RECOMMENDED COURSES", sb.String())
}
