package metrics

const (
	LoopClampsH       = "The total number of clock source readings that went backwards and were clamped or rejected"
	LoopClampsN       = "timesim_loop_clamps"
	LoopClockStepsH   = "The total number of clock steps taken by the simulation loop"
	LoopClockStepsN   = "timesim_loop_clock_steps"
	LoopTicksDroppedH = "The total number of fixed simulation steps dropped over the per-update cap"
	LoopTicksDroppedN = "timesim_loop_ticks_dropped"
	LoopTicksH        = "The total number of fixed simulation steps released"
	LoopTicksN        = "timesim_loop_ticks"
)
