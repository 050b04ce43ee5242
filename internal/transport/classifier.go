package transport

// Speed bands in m/s for classification from position fixes.
const (
	walkingMaxSpeed = 2.0
	cyclingMaxSpeed = 8.0
	transitMaxSpeed = 20.0
)

// DefaultWindow is the number of recent votes a majority must win to
// override an established mode.
const DefaultWindow = 5

// Hint carries the motion-activity flags reported by a device's motion
// sensor. Automotive conflates private cars and public transport.
type Hint struct {
	Walking    bool `json:"walking"`
	Running    bool `json:"running"`
	Cycling    bool `json:"cycling"`
	Automotive bool `json:"automotive"`
	Stationary bool `json:"stationary"`
}

// Classifier fuses motion hints and instantaneous speeds into a single
// transport mode for an ongoing session. Classification is sticky: once a
// mode is established, only a majority of the most recent window votes for a
// single other mode overrides it.
type Classifier struct {
	window    int
	votes     []Mode
	mode      Mode
	lastSpeed float64
}

func NewClassifier(window int) *Classifier {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Classifier{window: window, mode: Unknown}
}

// Mode returns the current decision, Unknown until the first confident vote.
func (c *Classifier) Mode() Mode {
	return c.mode
}

// ObserveSpeed records an instantaneous speed from a position fix.
// Non-positive speeds are GPS glitches and cast no vote.
func (c *Classifier) ObserveSpeed(speedMps float64) Mode {
	if speedMps <= 0 {
		return c.mode
	}
	c.lastSpeed = speedMps
	c.vote(bandSpeed(speedMps))
	return c.mode
}

// ObserveHint records a motion-activity hint. Hints take precedence when
// exactly one flag is set; automotive resolves through the speed band since
// the sensor cannot tell cars from buses. Ambiguous or stationary hints cast
// no vote.
func (c *Classifier) ObserveHint(h Hint) Mode {
	onFoot := h.Walking || h.Running
	set := 0
	for _, f := range []bool{onFoot, h.Cycling, h.Automotive, h.Stationary} {
		if f {
			set++
		}
	}
	if set != 1 {
		return c.mode
	}
	switch {
	case onFoot:
		c.vote(Walking)
	case h.Cycling:
		c.vote(Cycling)
	case h.Automotive:
		c.vote(c.motorized())
	}
	// stationary: no vote
	return c.mode
}

// motorized picks between public transport and car for an automotive hint
// using the last known speed.
func (c *Classifier) motorized() Mode {
	if c.lastSpeed >= cyclingMaxSpeed && c.lastSpeed < transitMaxSpeed {
		return PublicTransport
	}
	return Car
}

func (c *Classifier) vote(m Mode) {
	c.votes = append(c.votes, m)
	if len(c.votes) > c.window {
		c.votes = c.votes[len(c.votes)-c.window:]
	}

	if c.mode == Unknown {
		c.mode = m
		return
	}

	counts := map[Mode]int{}
	for _, v := range c.votes {
		counts[v]++
	}
	for mode, n := range counts {
		if mode != c.mode && n*2 > c.window {
			c.mode = mode
			return
		}
	}
}

func bandSpeed(speedMps float64) Mode {
	switch {
	case speedMps < walkingMaxSpeed:
		return Walking
	case speedMps < cyclingMaxSpeed:
		return Cycling
	case speedMps < transitMaxSpeed:
		return PublicTransport
	default:
		return Car
	}
}
