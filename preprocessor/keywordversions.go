package preprocessor

// knownKeywordVersions is the closed, ordered table of
// `begin_keywords version strings this preprocessor recognizes, oldest
// first. Ordering stands in for the golang.org/x/mod/semver-style
// comparison DESIGN.md and SPEC_FULL.md describe: there is no real semver
// string here (IEEE version strings like "1800-2017" aren't semver), so
// ordering is expressed directly as a table index rather than invented
// semver triples.
var knownKeywordVersions = []string{
	"1364-1995",
	"1364-2001",
	"1364-2005",
	"1800-2005",
	"1800-2009",
	"1800-2012",
	"1800-2017",
}

// keywordVersionIndex returns the ordering index of v, or -1 if v is not a
// recognized version string.
func keywordVersionIndex(v string) int {
	for i, known := range knownKeywordVersions {
		if known == v {
			return i
		}
	}
	return -1
}
