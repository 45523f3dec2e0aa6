package searcher

import (
	"sync"
	"time"

	"reversi/experiments/metrics"
	"reversi/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	root       *decision
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

// NewMCTS builds a searcher running on the given number of goroutines. Episodes
// take precedence over duration; at least one of them must be set.
func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluatePieces,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit count of every explored
// move. The lineage holds the moves played since the previous call; the
// previous tree is reused when it leads to state.
func (m *MCTS) Simulate(state game.State, lineage []Segment) (map[game.Position]float64, metrics.SearchMetric) {
	m.findRoot(lineage, state)

	// Run simulations to collect statistics
	m.metrics.Start(m.goroutines, m.cutoff)
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}
	metric := m.metrics.Complete()

	// Output move policy and move finding metrics
	policy := m.root.Policy()
	return policy, metric
}

func (m *MCTS) iterate(state game.State) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(state)
				m.metrics.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(state game.State) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(state)
					m.metrics.AddEpisode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	// Episodes in flight still back up into the tree
	wg.Wait()
}

func (m *MCTS) findRoot(lineage []Segment, state game.State) {
	root := traverse(m.root, lineage)
	if root != nil && root.hash != state.Hash() {
		log.Warn().Msgf("reused root hash %d does not match state hash %d", root.hash, state.Hash())
		root = nil
	}

	if root == nil {
		m.root = newDecision(nil, state)
		m.metrics.SetTreeReset(true)
		return
	}

	root.Lock()
	root.parent = nil
	root.mover = ""
	root.Unlock()
	m.root = root
	m.metrics.SetTreeReset(false)
}

func traverse(root *decision, lineage []Segment) *decision {
	if root == nil {
		return nil
	}

	node := root
	for _, segment := range lineage {
		child := node.child(segment.Move)
		if child == nil { // Node has not expanded this move
			return nil
		}
		if child.hash != segment.StateHash {
			log.Warn().Msgf("node's state hash %d does not match segment's state hash %d", child.hash, segment.StateHash)
			return nil
		}
		node = child
	}
	return node
}

func (m *MCTS) simulate(state game.State) {
	newNode, newState := selectThenExpand(m.root, state)
	reward := rollout(newState, m.cutoff, m.evaluate, m.metrics)
	backup(newNode, reward)
}

func selectThenExpand(root *decision, state game.State) (*decision, game.State) {
	parent := root
	child, state, selected := parent.SelectOrExpand(state)
	for selected && (child != parent) {
		parent = child
		child, state, selected = parent.SelectOrExpand(state)
	}
	return child, state
}

func rollout(state game.State, cutoff int, evaluate game.Evaluate, metrics metrics.Collector) func(string) float64 {
	depth := 0
	moves := state.LegalMoves()
	// Rollout till game over or for cutoff number of moves
	for len(moves) > 0 && (depth < cutoff) {
		move := moves[rand.Intn(len(moves))] // Random rollout policy
		state = state.Play(move)
		moves = state.LegalMoves()
		depth++
	}

	if len(moves) == 0 { // Game over before cutoff
		metrics.AddFullPlayout()
		return terminalReward(state.Winners())
	}

	// At cutoff state, score from the current player's perspective
	return evaluationReward(state.Player(), evaluate(state))
}

func backup(newNode *decision, reward func(string) float64) {
	node := newNode
	for node != nil {
		parent := node.Backup(reward)
		node = parent
	}
}
