package topicmodel

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mathext"

	"topiclab/internal/vocab"
)

const (
	inferenceIterations = 50
	gammaThreshold      = 1e-3
	epsilon             = 1e-100
)

// inferGamma runs the per-document variational fixed point against the stored
// topic-word matrix and returns the unnormalised topic weights.
func (m *Model) inferGamma(bow vocab.Bow) []float64 {
	k := m.NumTopics
	gamma := make([]float64, k)

	n := float64(bow.Len())
	for t := range gamma {
		gamma[t] = m.Alpha[t] + n/float64(k)
	}
	if len(bow) == 0 {
		copy(gamma, m.Alpha)
		return gamma
	}

	expElogtheta := make([]float64, k)
	dirichletExpectation(gamma, expElogtheta)
	expElog(expElogtheta)

	phinorm := make([]float64, len(bow))
	m.phinorm(bow, expElogtheta, phinorm)

	last := make([]float64, k)
	for it := 0; it < inferenceIterations; it++ {
		copy(last, gamma)

		for t := 0; t < k; t++ {
			var s float64
			for i, tc := range bow {
				s += float64(tc.Count) / phinorm[i] * m.topics.At(t, tc.ID)
			}
			gamma[t] = m.Alpha[t] + expElogtheta[t]*s
		}

		dirichletExpectation(gamma, expElogtheta)
		expElog(expElogtheta)
		m.phinorm(bow, expElogtheta, phinorm)

		if floats.Distance(gamma, last, 1)/float64(k) < gammaThreshold {
			break
		}
	}

	return gamma
}

func (m *Model) phinorm(bow vocab.Bow, expElogtheta, dst []float64) {
	for i, tc := range bow {
		var s float64
		for t, e := range expElogtheta {
			s += e * m.topics.At(t, tc.ID)
		}
		dst[i] = s + epsilon
	}
}

// dirichletExpectation writes E[log theta] under Dirichlet(alpha) into dst.
func dirichletExpectation(alpha, dst []float64) {
	psiSum := mathext.Digamma(floats.Sum(alpha))
	for i, a := range alpha {
		dst[i] = mathext.Digamma(a) - psiSum
	}
}

func expElog(v []float64) {
	for i, x := range v {
		v[i] = math.Exp(x)
	}
}

// trigamma is the Hurwitz zeta function at s = 2.
func trigamma(x float64) float64 {
	return mathext.Zeta(2, x)
}

// UpdateAlpha re-estimates an asymmetric document-topic prior from corpus with
// damped Newton steps on the Dirichlet likelihood, one per round. A step that
// would make any component non-positive is skipped.
func (m *Model) UpdateAlpha(corpus []vocab.Bow, rounds int) {
	docs := make([]vocab.Bow, 0, len(corpus))
	for _, bow := range corpus {
		if len(bow) > 0 {
			docs = append(docs, bow)
		}
	}
	if len(docs) == 0 {
		return
	}

	k := m.NumTopics
	n := float64(len(docs))
	logphat := make([]float64, k)
	elog := make([]float64, k)
	gradf := make([]float64, k)
	q := make([]float64, k)
	step := make([]float64, k)

	for round := 0; round < rounds; round++ {
		for i := range logphat {
			logphat[i] = 0
		}
		for _, bow := range docs {
			dirichletExpectation(m.inferGamma(bow), elog)
			floats.Add(logphat, elog)
		}
		floats.Scale(1/n, logphat)

		psiSum := mathext.Digamma(floats.Sum(m.Alpha))
		c := n * trigamma(floats.Sum(m.Alpha))

		var sumGQ, sumInvQ float64
		for t, a := range m.Alpha {
			gradf[t] = n * (psiSum - mathext.Digamma(a) + logphat[t])
			q[t] = -n * trigamma(a)
			sumGQ += gradf[t] / q[t]
			sumInvQ += 1 / q[t]
		}
		b := sumGQ / (1/c + sumInvQ)

		rho := math.Pow(float64(round+1), -0.5)
		ok := true
		for t, a := range m.Alpha {
			step[t] = -rho * (gradf[t] - b) / q[t]
			if a+step[t] <= 0 || math.IsNaN(step[t]) {
				ok = false
			}
		}
		if ok {
			floats.Add(m.Alpha, step)
		}
	}
}
