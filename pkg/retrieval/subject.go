package retrieval

import "strings"

// SubjectCorpusMap maps a learning-area name to its curriculum corpus file.
var SubjectCorpusMap = map[string]string{
	"คณิตศาสตร์":   "math.csv",
	"วิทยาศาสตร์":  "science.csv",
	"ภาษาไทย":      "thai.csv",
	"ภาษาอังกฤษ":   "english.csv",
	"สุขศึกษา":     "health.csv",
	"สังคมศึกษา":   "social_study.csv",
	"ศิลปะ":        "art.csv",
	"การงานอาชีพ":  "career_academic.csv",
}

// DefaultCorpus is used when no subject matches closely enough.
const DefaultCorpus = "curriculum.csv"

// ResolveCorpus picks the corpus file for a subject. Exact matches win;
// otherwise the closest subject by bigram similarity is used when it
// clears the threshold, else the combined default corpus.
func ResolveCorpus(subject string, threshold float64) string {
	subject = strings.TrimSpace(subject)
	if file, ok := SubjectCorpusMap[subject]; ok {
		return file
	}

	bestScore := 0.0
	bestFile := ""
	for name, file := range SubjectCorpusMap {
		score := DiceSimilarity(subject, name)
		if score > bestScore {
			bestScore = score
			bestFile = file
		}
	}

	if bestScore >= threshold {
		return bestFile
	}
	return DefaultCorpus
}

// DiceSimilarity computes the Sørensen-Dice coefficient over character
// bigrams of the two strings. Returns a value in [0, 1].
func DiceSimilarity(a, b string) float64 {
	ra := []rune(a)
	rb := []rune(b)

	if len(ra) < 2 || len(rb) < 2 {
		if a == b && a != "" {
			return 1.0
		}
		return 0.0
	}

	bigrams := make(map[string]int)
	for i := 0; i < len(ra)-1; i++ {
		bigrams[string(ra[i:i+2])]++
	}

	matches := 0
	for i := 0; i < len(rb)-1; i++ {
		key := string(rb[i : i+2])
		if bigrams[key] > 0 {
			bigrams[key]--
			matches++
		}
	}

	return 2.0 * float64(matches) / float64(len(ra)-1+len(rb)-1)
}
