package genemodel

import (
	"fmt"
	"strings"
)

// defaultSource fills the GTF source column for models that don't set one.
const defaultSource = "custom"

// GTF renders the models as GTF 2.2 annotation: one gene line per model,
// followed by its transcript lines, each followed by numbered exon lines.
// Columns are tab-separated; unused score and frame columns hold ".".
func GTF(models []Model) string {
	var b strings.Builder
	for _, m := range models {
		source := m.Source
		if source == "" {
			source = defaultSource
		}
		name := m.GeneName
		if name == "" {
			name = m.GeneID
		}
		biotype := ""
		if m.Biotype != "" {
			biotype = fmt.Sprintf(` gene_biotype "%s";`, m.Biotype)
		}

		fmt.Fprintf(&b, "%s\t%s\tgene\t%d\t%d\t.\t%s\t.\tgene_id \"%s\"; gene_name \"%s\";%s\n",
			m.Seqname, source, m.Start, m.End, m.Strand, m.GeneID, name, biotype)
		for _, t := range m.Transcripts {
			fmt.Fprintf(&b, "%s\t%s\ttranscript\t%d\t%d\t.\t%s\t.\tgene_id \"%s\"; transcript_id \"%s\"; gene_name \"%s\";\n",
				m.Seqname, source, t.Start, t.End, m.Strand, m.GeneID, t.TranscriptID, name)
			for i, e := range t.Exons {
				fmt.Fprintf(&b, "%s\t%s\texon\t%d\t%d\t.\t%s\t.\tgene_id \"%s\"; transcript_id \"%s\"; exon_number \"%d\"; gene_name \"%s\";\n",
					m.Seqname, source, e.Start, e.End, m.Strand, m.GeneID, t.TranscriptID, i+1, name)
			}
		}
	}
	return b.String()
}
