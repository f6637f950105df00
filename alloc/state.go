package alloc

import (
	"math"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/outofforest/photon"
	"github.com/outofforest/xorlist/types"
)

// DefaultNodesPerSegment is the number of nodes mapped at once if config doesn't say otherwise.
const DefaultNodesPerSegment = 1024

// ErrOutOfSpace is returned when node can't be allocated because the limit of nodes is reached.
var ErrOutOfSpace = errors.New("out of space")

// ErrSegmentTooLarge is returned when the segment of configured size can't be addressed.
var ErrSegmentTooLarge = errors.New("segment is too large")

// Config stores configuration of the arena.
type Config struct {
	// NodeSize is the size of every node, it must be a multiple of 8 bytes.
	NodeSize uint64

	// NodesPerSegment is the number of nodes mapped when the arena runs out of free nodes.
	NodesPerSegment uint64

	// MaxNodes limits the number of nodes the arena may ever map. 0 means no limit.
	MaxNodes uint64

	UseHugePages bool
}

// NewState creates new arena state. Memory is mapped lazily, on first allocation.
func NewState(config Config) (*State, error) {
	if config.NodeSize == 0 || config.NodeSize%types.UInt64Length != 0 {
		return nil, errors.Errorf("node size must be a positive multiple of %d, got %d",
			types.UInt64Length, config.NodeSize)
	}
	if config.NodesPerSegment == 0 {
		config.NodesPerSegment = DefaultNodesPerSegment
	}
	if config.NodesPerSegment > math.MaxInt/config.NodeSize {
		return nil, errors.Wrapf(ErrSegmentTooLarge, "%d nodes of %d bytes", config.NodesPerSegment,
			config.NodeSize)
	}

	return &State{
		config: config,
		free:   newRing[types.NodeAddress](0),
	}, nil
}

// State stores the arena. Segments are mapped separately and never move, so addresses stay valid for the lifetime
// of the state.
type State struct {
	config       Config
	segments     []unsafe.Pointer
	deallocFuncs []func()
	free         *ring[types.NodeAddress]
	allocated    uint64
	closed       bool
}

// NodeSize returns size of node.
func (s *State) NodeSize() uint64 {
	return s.config.NodeSize
}

// Capacity returns the number of nodes mapped so far.
func (s *State) Capacity() uint64 {
	return s.free.Cap()
}

// Allocated returns the number of nodes currently in use.
func (s *State) Allocated() uint64 {
	return s.allocated
}

// Node returns pointer to the node memory.
func (s *State) Node(nodeAddress types.NodeAddress) unsafe.Pointer {
	index := uint64(nodeAddress) - 1
	return unsafe.Add(s.segments[index/s.config.NodesPerSegment],
		(index%s.config.NodesPerSegment)*s.config.NodeSize)
}

// Bytes returns byte slice of a node.
func (s *State) Bytes(nodeAddress types.NodeAddress) []byte {
	return photon.SliceFromPointer[byte](s.Node(nodeAddress), int(s.config.NodeSize))
}

// Allocate allocates zeroed node.
func (s *State) Allocate() (types.NodeAddress, error) {
	if s.free.Len() == 0 {
		if err := s.addSegment(); err != nil {
			return 0, err
		}
	}

	nodeAddress, err := s.free.Get()
	if err != nil {
		return 0, err
	}
	clear(s.Bytes(nodeAddress))
	s.allocated++

	return nodeAddress, nil
}

// Deallocate returns node to the pool of free nodes.
func (s *State) Deallocate(nodeAddress types.NodeAddress) {
	if nodeAddress == 0 {
		return
	}

	s.free.Put(nodeAddress)
	s.allocated--
}

// Close unmaps all the segments. Addresses returned before must not be used anymore.
func (s *State) Close() {
	if s.closed {
		return
	}
	s.closed = true

	for _, deallocF := range s.deallocFuncs {
		deallocF()
	}
	s.segments = nil
	s.deallocFuncs = nil
	s.free = newRing[types.NodeAddress](0)
	s.allocated = 0
}

func (s *State) addSegment() error {
	if s.closed {
		return errors.New("arena is closed")
	}

	mapped := s.free.Cap()
	numOfNodes := s.config.NodesPerSegment
	if s.config.MaxNodes > 0 {
		if mapped >= s.config.MaxNodes {
			return errors.WithStack(ErrOutOfSpace)
		}
		numOfNodes = min(numOfNodes, s.config.MaxNodes-mapped)
	}

	segment, deallocF, err := Allocate(numOfNodes*s.config.NodeSize, s.config.UseHugePages)
	if err != nil {
		return err
	}

	s.segments = append(s.segments, segment)
	s.deallocFuncs = append(s.deallocFuncs, deallocF)

	s.free.Grow(numOfNodes)
	for i := range numOfNodes {
		s.free.Put(types.NodeAddress(mapped + i + 1))
	}

	return nil
}
