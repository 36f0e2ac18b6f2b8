package inspect

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WriteReport prints one row per entity followed by the digest.
func WriteReport(w io.Writer, s Snapshot, tag language.Tag) error {
	p := message.NewPrinter(tag)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPOSITION\tROTATION\tVELOCITY\tCOMPONENTS")
	for _, st := range s.Entities {
		pos, rot, vel := "-", "-", "-"
		if t := st.Transform; t != nil {
			pos = p.Sprintf("(%.3f, %.3f)", t.Position.X(), t.Position.Y())
			rot = p.Sprintf("%.2f°", t.Rotation)
		}
		if rb := st.Rigidbody; rb != nil {
			vel = p.Sprintf("(%.3f, %.3f) ω=%.3f", rb.Velocity.X(), rb.Velocity.Y(), rb.AngularVelocity)
		}
		name := st.Name
		if name == "" {
			name = "-"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%d\n", st.Entity, name, pos, rot, vel, len(st.Components))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := p.Fprintf(w, "%d entities, %d pending, digest %s\n",
		len(s.Entities), s.Pending, DigestString(s))
	return err
}
