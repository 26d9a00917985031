// Package genemodel parses and validates the YAML gene models stored for
// user-defined genes, and renders them as GTF annotation. A gene model file
// is a YAML list of gene mappings; files registered for a single gene must
// hold exactly one. Structural validation runs against an embedded JSON
// schema before decoding, then coordinate checks run on the decoded models.
package genemodel
