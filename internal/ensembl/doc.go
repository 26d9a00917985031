// Package ensembl fetches genome source files from the Ensembl public FTP
// mirror over HTTPS: the annotation GTF and the DNA fasta for a species and
// release, preferring the primary assembly and falling back to the toplevel
// sequence when a release has no primary assembly file. Downloads land in
// the registry's temporary tree together with a metadata file ready for
// register-genome.
package ensembl
