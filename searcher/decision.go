package searcher

import (
	"math"
	"sync"

	"reversi/game"

	"golang.org/x/exp/slices"
)

// decision is a search tree node for one state. Rewards are accumulated from the
// perspective of mover, the player whose move led to the node, so a parent
// always picks the child with the highest value.
type decision struct {
	sync.RWMutex
	parent     *decision
	mover      string
	player     string
	hash       game.StateHash
	unexplored []game.Position
	explored   []game.Position
	children   []*decision
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, state game.State) *decision {
	mover := ""
	if parent != nil {
		mover = parent.player
	}
	return &decision{
		parent:     parent,
		mover:      mover,
		player:     state.Player(),
		hash:       state.Hash(),
		unexplored: state.LegalMoves(),
	}
}

// SelectOrExpand descends one level. It expands the next unexplored move if
// any, otherwise selects the child with the highest UCT value. Either way the
// child carries a virtual loss until it is backed up. A terminal node returns
// itself.
func (d *decision) SelectOrExpand(state game.State) (*decision, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) > 0 { // Expandable node
		move := d.unexplored[0]
		d.unexplored = d.unexplored[1:]
		childState := state.Play(move)
		child := newDecision(d, childState)
		d.explored = append(d.explored, move)
		d.children = append(d.children, child)
		child.applyLoss()
		return child, childState, false
	}

	if len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	// Fully expanded node
	ith := d.selectChild()
	child := d.children[ith]
	child.applyLoss()
	return child, state.Play(d.explored[ith]), true
}

func (d *decision) selectChild() int {
	// Children always hold at least one (possibly virtual) visit
	total := 0.0
	for _, child := range d.children {
		_, visits := child.stats()
		total += visits
	}
	policy := newUCT(CSquared, total)

	maxIndex := -1
	maxValue := math.Inf(-1)
	for i, child := range d.children {
		rewards, visits := child.stats()
		if value := policy.evaluate(rewards, visits); value > maxValue {
			maxValue = value
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) applyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) stats() (rewards float64, visits float64) {
	d.RLock()
	defer d.RUnlock()

	return d.rewards, d.visits
}

// Backup replaces the node's virtual loss with the reward of its mover and
// returns the parent.
func (d *decision) Backup(reward func(player string) float64) *decision {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Root nodes never carry a virtual loss
		d.reverseLoss()
	}

	d.rewards += reward(d.mover)
	d.visits++

	return d.parent
}

// Policy maps every explored move to its child's visit count
func (d *decision) Policy() map[game.Position]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Position]float64, len(d.children))
	for i, child := range d.children {
		_, visits := child.stats()
		policy[d.explored[i]] = visits
	}
	return policy
}

func (d *decision) child(move game.Position) *decision {
	d.RLock()
	defer d.RUnlock()

	if i := slices.Index(d.explored, move); i >= 0 {
		return d.children[i]
	}
	return nil
}
