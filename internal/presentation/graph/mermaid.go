package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/leveledit/pkg/domain"
)

// Overlay marks objects to emphasize, e.g. the editor's current selection.
type Overlay struct {
	Selected []string
}

// GenerateMermaid renders the scene's parent hierarchy as a Mermaid flowchart.
// Shapes follow the object type:
// - Light: ((Circle))
// - Group: [[Subroutine]]
// - Camera: [/Parallelogram/]
// - Default: [Rectangle]
func GenerateMermaid(scene *domain.Scene, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, o := range scene.Objects {
		safeID := sanitizeMermaidID(o.ID)

		opener, closer := "[", "]"
		switch o.Type {
		case domain.TypeLight:
			opener, closer = "((", "))"
		case domain.TypeGroup:
			opener, closer = "[[", "]]"
		case domain.TypeCamera:
			opener, closer = "[/", "/]"
		}

		label := o.ID
		if o.Name != "" && o.Name != o.ID {
			label = fmt.Sprintf("%s <br/> %s", o.ID, o.Name)
		}
		if o.Model != "" {
			label = fmt.Sprintf("%s <br/> %s", label, o.Model)
		}
		label = strings.ReplaceAll(label, "\"", "'")
		fmt.Fprintf(&sb, "    %s%s\"%s\"%s\n", safeID, opener, label, closer)
	}

	// Edges after nodes so parents declared later still get their shape.
	for _, o := range scene.Objects {
		if o.Parent == "" {
			continue
		}
		fmt.Fprintf(&sb, "    %s --> %s\n", sanitizeMermaidID(o.Parent), sanitizeMermaidID(o.ID))
	}

	if overlay != nil && len(overlay.Selected) > 0 {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for contrast regardless of theme.
		sb.WriteString("    classDef selected fill:#ffeb3b,stroke:#fbc02d,stroke-width:3px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.Selected {
			safeID := sanitizeMermaidID(id)
			if safeID == "" || seen[safeID] {
				continue
			}
			seen[safeID] = true
			fmt.Fprintf(&sb, "    class %s selected;\n", safeID)
		}
	}

	return sb.String()
}

func sanitizeMermaidID(id string) string {
	return strings.NewReplacer(".", "_", "-", "_", "/", "_", "\\", "_", " ", "_").Replace(id)
}
