package smf

import "time"

// defaultMicrosPerQuarter is the SMF default tempo of 120 BPM, assumed
// until the first SetTempo event.
const defaultMicrosPerQuarter = 500000

// TempoEvent is one tempo change, positioned in absolute ticks from the
// start of the file.
type TempoEvent struct {
	Tick             uint64
	MicrosPerQuarter uint32
}

// TempoMap collects every SetTempo event across all tracks, ordered by
// absolute tick. A default 120 BPM entry is ensured at tick 0 so the
// map always covers the whole file.
func (f *File) TempoMap() []TempoEvent {
	var events []TempoEvent
	for _, t := range f.Tracks {
		var tick uint64
		for _, m := range t.Messages {
			tick += uint64(m.Delta)
			meta, ok := m.Event.(Meta)
			if !ok || meta.Type != MetaSetTempo {
				continue
			}
			if micros := meta.MicrosPerQuarter(); micros != 0 {
				events = append(events, TempoEvent{Tick: tick, MicrosPerQuarter: micros})
			}
		}
	}
	sortTempoEvents(events)
	if len(events) == 0 || events[0].Tick > 0 {
		events = append([]TempoEvent{{Tick: 0, MicrosPerQuarter: defaultMicrosPerQuarter}}, events...)
	}
	return events
}

// sortTempoEvents orders events by tick, keeping encounter order for
// equal ticks. Insertion sort: tempo maps are short and mostly sorted
// already (format 0/1 files keep tempo in one track).
func sortTempoEvents(events []TempoEvent) {
	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j].Tick < events[j-1].Tick; j-- {
			events[j], events[j-1] = events[j-1], events[j]
		}
	}
}

// Duration computes the wall-clock length of the file by walking the
// tempo map across the longest track. SMPTE-division files have a fixed
// tick duration and ignore tempo events.
func (f *File) Duration() time.Duration {
	var lastTick uint64
	for _, t := range f.Tracks {
		var tick uint64
		for _, m := range t.Messages {
			tick += uint64(m.Delta)
		}
		if tick > lastTick {
			lastTick = tick
		}
	}

	switch f.Header.Division.Kind {
	case DivisionSMPTE:
		ticksPerSecond := float64(f.Header.Division.FramesPerSecond) * float64(f.Header.Division.TicksPerFrame)
		if ticksPerSecond == 0 {
			return 0
		}
		return time.Duration(float64(lastTick) / ticksPerSecond * float64(time.Second))
	default:
		ppq := f.Header.Division.TicksPerQuarter
		if ppq == 0 {
			return 0
		}
		tempo := f.TempoMap()
		var micros float64
		for i, ev := range tempo {
			segmentEnd := lastTick
			if i+1 < len(tempo) && tempo[i+1].Tick < lastTick {
				segmentEnd = tempo[i+1].Tick
			}
			if segmentEnd <= ev.Tick {
				continue
			}
			ticks := segmentEnd - ev.Tick
			micros += float64(ticks) * float64(ev.MicrosPerQuarter) / float64(ppq)
		}
		return time.Duration(micros * float64(time.Microsecond))
	}
}
