package docs

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/keshon/slashery/pkg/slash"
)

var sectionTitles = []struct {
	kind  slash.Kind
	title string
}{
	{slash.ChatInput, "Slash commands"},
	{slash.UserMenu, "User context menu"},
	{slash.MessageMenu, "Message context menu"},
}

// CommandSections renders the command reference as markdown: one section per
// command kind, commands in registration order.
func CommandSections(schemas []slash.CommandSchema) string {
	var buf bytes.Buffer
	for _, section := range sectionTitles {
		first := true
		for _, s := range schemas {
			if s.Kind != section.kind {
				continue
			}
			if first {
				if buf.Len() > 0 {
					buf.WriteString("\n")
				}
				fmt.Fprintf(&buf, "### %s\n\n", section.title)
				first = false
			}
			writeCommand(&buf, s)
		}
	}
	return buf.String()
}

func writeCommand(buf *bytes.Buffer, s slash.CommandSchema) {
	if s.Kind != slash.ChatInput {
		fmt.Fprintf(buf, "- **%s**\n", s.Name)
		return
	}
	fmt.Fprintf(buf, "- **/%s** %s\n", s.Name, s.Description)
	for _, o := range s.Options {
		optional := ""
		if !o.Required {
			optional = ", optional"
		}
		fmt.Fprintf(buf, "  - `%s` (%s%s) %s", o.Name, o.Kind, optional, o.Description)
		if len(o.Choices) > 0 {
			labels := make([]string, len(o.Choices))
			for i, c := range o.Choices {
				labels[i] = c.Label
			}
			fmt.Fprintf(buf, ": %s", strings.Join(labels, ", "))
		}
		buf.WriteString("\n")
	}
}

// Render executes the README template with the command reference available
// as {{.CommandSections}}.
func Render(w io.Writer, tmplText string, schemas []slash.CommandSchema) error {
	tmpl, err := template.New("readme").Parse(tmplText)
	if err != nil {
		return err
	}
	data := struct {
		CommandSections string
	}{
		CommandSections: CommandSections(schemas),
	}
	return tmpl.Execute(w, data)
}

// UpdateReadme regenerates outPath from the template at tmplPath.
func UpdateReadme(tmplPath, outPath string, schemas []slash.CommandSchema) error {
	tmplData, err := os.ReadFile(tmplPath)
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := Render(&out, string(tmplData), schemas); err != nil {
		return err
	}
	return os.WriteFile(outPath, out.Bytes(), 0644)
}
