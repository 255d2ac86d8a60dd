package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/leveledit/pkg/domain"
)

// SceneMarkdown summarizes a scene as a markdown document: counts per object type
// followed by a table of every object.
func SceneMarkdown(scene *domain.Scene) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", orDash(scene.Name))
	fmt.Fprintf(&sb, "Format version %d, %d objects.\n\n", scene.Version, len(scene.Objects))

	if len(scene.Objects) == 0 {
		sb.WriteString("_Empty scene._\n")
		return sb.String()
	}

	counts := map[string]int{}
	for _, o := range scene.Objects {
		counts[o.Type]++
	}
	types := make([]string, 0, len(counts))
	for typ := range counts {
		types = append(types, typ)
	}
	sort.Strings(types)

	sb.WriteString("## Types\n\n")
	for _, typ := range types {
		fmt.Fprintf(&sb, "- **%s**: %d\n", typ, counts[typ])
	}

	sb.WriteString("\n## Objects\n\n")
	sb.WriteString("| ID | Type | Name | Parent | Position | Model |\n")
	sb.WriteString("|----|------|------|--------|----------|-------|\n")
	for _, o := range scene.Objects {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s | %s |\n",
			cell(o.ID), cell(o.Type), cell(o.Name), cell(o.Parent), formatVec(o.Pos), cell(o.Model))
	}
	return sb.String()
}

func formatVec(v domain.Vec3) string {
	return fmt.Sprintf("(%g, %g, %g)", v[0], v[1], v[2])
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return strings.ReplaceAll(s, "|", `\|`)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
