package template

// styleOffset fixes, for every non-neutral style, which position in a
// topic's template array it favors first. Templates within a topic
// are authored so that index 0 carries a bold flavor, index 1 a
// methodical one, index 2 a swift one, and index 3 a steadfast one —
// so offset doubles as "my flavor's home index".
var styleOffset = map[Style]int{
	StyleBold:       0,
	StyleMethodical: 1,
	StyleSwift:      2,
	StyleSteadfast:  3,
}

// bucketFor builds the ordered index sequence for one (topic, style)
// pair over an array of n templates. neutral always yields the
// canonical permutation [0, 1, ..., n-1]. Other styles yield a
// permutation generated by walking the array with a stride coprime to
// n, starting at that style's offset — so every style's first pick
// (pickIndex 0) lands on the template authored in its flavor, and
// every style still visits the full template set as pickIndex grows.
func bucketFor(n int, style Style) []int {
	bucket := make([]int, n)
	if style == StyleNeutral || n == 0 {
		for i := range bucket {
			bucket[i] = i
		}
		return bucket
	}
	stride := 2
	if gcd(stride, n) != 1 {
		stride = 1
	}
	offset := styleOffset[style] % n
	for i := range bucket {
		bucket[i] = (offset + stride*i) % n
	}
	return bucket
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ResultBuckets maps topic -> style -> ordered template indices for
// result generation. Built at package init from ResultTemplates so
// adding a topic or template automatically produces valid buckets.
var ResultBuckets = buildBuckets(ResultTemplates)

// QuestionBuckets is the question-template analogue of ResultBuckets.
var QuestionBuckets = buildBuckets(QuestionTemplates)

func buildBuckets(templates map[Topic][]string) map[Topic]map[Style][]int {
	out := make(map[Topic]map[Style][]int, len(templates))
	for topic, list := range templates {
		perStyle := make(map[Style][]int, len(Styles))
		for _, style := range Styles {
			perStyle[style] = bucketFor(len(list), style)
		}
		out[topic] = perStyle
	}
	return out
}
