package dashboard

// Panel opens and closes the weather detail panel.
type Panel struct {
	board    *Board
	gestures *Gestures
}

func NewPanel(board *Board, gestures *Gestures) *Panel {
	return &Panel{board: board, gestures: gestures}
}

// ClickSummary opens the panel unless the click ends a drag. It reports
// whether the panel was opened.
func (p *Panel) ClickSummary() bool {
	if p.gestures != nil && p.gestures.ConsumeDrag() {
		return false
	}
	p.board.Update(func(s *State) {
		s.Panel = PanelState{Expanded: true, BackdropVisible: true}
	})
	return true
}

// ClickBackdrop closes the panel.
func (p *Panel) ClickBackdrop() {
	p.board.Update(func(s *State) {
		s.Panel = PanelState{}
	})
}
