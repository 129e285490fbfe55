package classify

// ClassMetrics holds precision/recall/F1 for a single label.
type ClassMetrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Support   int     `json:"support"`
}

// Evaluation summarizes classifier performance on a held-out set.
// Confusion is indexed [actual][predicted] over labels {0, 1}.
type Evaluation struct {
	Accuracy  float64              `json:"accuracy"`
	PerClass  map[int]ClassMetrics `json:"per_class"`
	Confusion [2][2]int            `json:"confusion_matrix"`
	Total     int                  `json:"total"`
}

// Evaluate scores the classifier against held-out documents. It is a pure
// function of true versus predicted labels; an empty held-out set yields a
// zero-valued Evaluation.
func (c *Classifier) Evaluate(heldOut []Document) Evaluation {
	truth := make([]int, len(heldOut))
	predicted := make([]int, len(heldOut))
	for i, d := range heldOut {
		truth[i] = d.Label
		predicted[i] = c.Predict(d.Text)
	}
	return Score(truth, predicted)
}

// Score computes accuracy, per-class metrics, and the confusion matrix for
// parallel slices of true and predicted binary labels.
func Score(truth, predicted []int) Evaluation {
	eval := Evaluation{
		PerClass: make(map[int]ClassMetrics),
		Total:    len(truth),
	}
	if len(truth) == 0 || len(truth) != len(predicted) {
		return eval
	}

	correct := 0
	for i := range truth {
		a, p := clampLabel(truth[i]), clampLabel(predicted[i])
		eval.Confusion[a][p]++
		if a == p {
			correct++
		}
	}
	eval.Accuracy = float64(correct) / float64(len(truth))

	for _, label := range []int{0, 1} {
		tp := eval.Confusion[label][label]
		fp := eval.Confusion[1-label][label]
		fn := eval.Confusion[label][1-label]

		m := ClassMetrics{Support: tp + fn}
		if tp+fp > 0 {
			m.Precision = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			m.Recall = float64(tp) / float64(tp+fn)
		}
		if m.Precision+m.Recall > 0 {
			m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
		}
		eval.PerClass[label] = m
	}
	return eval
}

func clampLabel(label int) int {
	if label == 1 {
		return 1
	}
	return 0
}
