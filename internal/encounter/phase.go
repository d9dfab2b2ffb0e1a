package encounter

import (
	"fmt"

	"github.com/looplab/fsm"
)

// Phase is the current step of an encounter.
type Phase int

const (
	UnitChooseCard Phase = iota
	UnitSelectTarget
	ActionChooseCard
	ActionSelectTargetFree
	Watch
)

var phaseNames = map[Phase]string{
	UnitChooseCard:         "unit_choose_card",
	UnitSelectTarget:       "unit_select_target",
	ActionChooseCard:       "action_choose_card",
	ActionSelectTargetFree: "action_select_target_free",
	Watch:                  "watch",
}

// String returns the phase name used as the FSM state.
func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Targeting reports whether the free-aim cursor is live in this phase.
func (p Phase) Targeting() bool {
	return p == UnitSelectTarget || p == ActionSelectTargetFree
}

func parsePhase(state string) Phase {
	for p, name := range phaseNames {
		if name == state {
			return p
		}
	}
	panic(fmt.Sprintf("encounter: unknown phase %q", state))
}

// FSM events.
const (
	evPickUnit         = "pick_unit"
	evPlace            = "place"
	evFinishDeployment = "finish_deployment"
	evPickAction       = "pick_action"
	evUse              = "use"
	evBack             = "back"
	evEndActions       = "end_actions"
	evCommand          = "command"
)

func phaseEvents() fsm.Events {
	s := Phase.String
	return fsm.Events{
		{Name: evPickUnit, Src: []string{s(UnitChooseCard)}, Dst: s(UnitSelectTarget)},
		{Name: evPlace, Src: []string{s(UnitSelectTarget)}, Dst: s(UnitChooseCard)},
		{Name: evFinishDeployment, Src: []string{s(UnitChooseCard), s(UnitSelectTarget)}, Dst: s(Watch)},
		{Name: evPickAction, Src: []string{s(ActionChooseCard)}, Dst: s(ActionSelectTargetFree)},
		{Name: evUse, Src: []string{s(ActionSelectTargetFree)}, Dst: s(ActionChooseCard)},
		{Name: evBack, Src: []string{s(UnitSelectTarget)}, Dst: s(UnitChooseCard)},
		{Name: evBack, Src: []string{s(ActionSelectTargetFree)}, Dst: s(ActionChooseCard)},
		{Name: evEndActions, Src: []string{s(ActionChooseCard)}, Dst: s(Watch)},
		{Name: evCommand, Src: []string{s(Watch)}, Dst: s(ActionChooseCard)},
	}
}
