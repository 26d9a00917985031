package genemodel

import "fmt"

// Model is one gene: its genomic span plus the transcripts annotated on it.
// Coordinates are 1-based and inclusive at both ends, as in GTF.
type Model struct {
	GeneID      string       `yaml:"gene_id" json:"gene_id"`
	GeneName    string       `yaml:"gene_name,omitempty" json:"gene_name,omitempty"`
	Seqname     string       `yaml:"seqname" json:"seqname"`
	Source      string       `yaml:"source,omitempty" json:"source,omitempty"`
	Biotype     string       `yaml:"biotype,omitempty" json:"biotype,omitempty"`
	Strand      string       `yaml:"strand" json:"strand"`
	Start       int          `yaml:"start" json:"start"`
	End         int          `yaml:"end" json:"end"`
	Transcripts []Transcript `yaml:"transcripts" json:"transcripts"`
}

// Transcript is one transcript of a gene and its exon structure.
type Transcript struct {
	TranscriptID string `yaml:"transcript_id" json:"transcript_id"`
	Start        int    `yaml:"start" json:"start"`
	End          int    `yaml:"end" json:"end"`
	Exons        []Exon `yaml:"exons" json:"exons"`
}

// Exon is one exon span within a transcript.
type Exon struct {
	Start int `yaml:"start" json:"start"`
	End   int `yaml:"end" json:"end"`
}

// Check verifies the model's coordinates: every span runs start to end,
// transcripts stay inside the gene, and exons stay inside their transcript.
func (m *Model) Check() error {
	if m.Start > m.End {
		return fmt.Errorf("gene %s: start %d after end %d", m.GeneID, m.Start, m.End)
	}
	for _, t := range m.Transcripts {
		if t.Start > t.End {
			return fmt.Errorf("transcript %s: start %d after end %d", t.TranscriptID, t.Start, t.End)
		}
		if t.Start < m.Start || t.End > m.End {
			return fmt.Errorf("transcript %s (%d-%d) outside gene %s (%d-%d)",
				t.TranscriptID, t.Start, t.End, m.GeneID, m.Start, m.End)
		}
		for i, e := range t.Exons {
			if e.Start > e.End {
				return fmt.Errorf("transcript %s exon %d: start %d after end %d",
					t.TranscriptID, i+1, e.Start, e.End)
			}
			if e.Start < t.Start || e.End > t.End {
				return fmt.Errorf("transcript %s exon %d (%d-%d) outside transcript (%d-%d)",
					t.TranscriptID, i+1, e.Start, e.End, t.Start, t.End)
			}
		}
	}
	return nil
}
