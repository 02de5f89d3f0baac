package metrics

// AccuracyScore is the fraction of exact label matches.
func AccuracyScore(yTrue, yPred []string) float64 {
	n := min(len(yTrue), len(yPred))
	if n == 0 {
		return 0
	}

	var correct int
	for i := 0; i < n; i++ {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(n)
}

// confusion holds per-label counts over the union of true and predicted labels.
type confusion struct {
	labels []string
	tp     map[string]int
	fp     map[string]int
	fn     map[string]int
}

func newConfusion(yTrue, yPred []string) *confusion {
	cm := &confusion{
		tp: make(map[string]int),
		fp: make(map[string]int),
		fn: make(map[string]int),
	}
	seen := make(map[string]bool)
	addLabel := func(l string) {
		if !seen[l] {
			seen[l] = true
			cm.labels = append(cm.labels, l)
		}
	}

	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		addLabel(t)
		addLabel(p)
		if t == p {
			cm.tp[t]++
			continue
		}
		cm.fp[p]++
		cm.fn[t]++
	}
	return cm
}

func (cm *confusion) precision(label string) float64 {
	return ratio(cm.tp[label], cm.tp[label]+cm.fp[label])
}

func (cm *confusion) recall(label string) float64 {
	return ratio(cm.tp[label], cm.tp[label]+cm.fn[label])
}

func (cm *confusion) f1(label string) float64 {
	p, r := cm.precision(label), cm.recall(label)
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func (cm *confusion) precisionMacro() float64 { return cm.macro(cm.precision) }
func (cm *confusion) recallMacro() float64    { return cm.macro(cm.recall) }
func (cm *confusion) f1Macro() float64        { return cm.macro(cm.f1) }

// balancedAccuracy averages recall over the labels present in y_true only.
func (cm *confusion) balancedAccuracy() float64 {
	var sum float64
	var n int
	for _, l := range cm.labels {
		if cm.tp[l]+cm.fn[l] == 0 {
			continue
		}
		sum += cm.recall(l)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func (cm *confusion) macro(per func(string) float64) float64 {
	if len(cm.labels) == 0 {
		return 0
	}
	var sum float64
	for _, l := range cm.labels {
		sum += per(l)
	}
	return sum / float64(len(cm.labels))
}

// ratio returns 0 for an empty denominator (ill-defined scores count as 0).
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
