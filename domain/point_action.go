package domain

// PointAction names something a customer did that earns points.
type PointAction string

const (
	ActionRegisterBonus    PointAction = "registerBonus"
	ActionLoginBonus       PointAction = "loginBonus"
	ActionSearch           PointAction = "searchAction"
	ActionTabView          PointAction = "tabView"
	ActionRatingSubmit     PointAction = "ratingSubmit"
	ActionStoreVisit       PointAction = "storeVisit"
	ActionAddFavoriteBonus PointAction = "addFavoriteBonus"
	ActionEmailClick       PointAction = "emailClick"

	// ActionManual is used for grants that do not come from the action table.
	ActionManual PointAction = "manual"
)

var pointsByAction = map[PointAction]int64{
	ActionRegisterBonus:    10,
	ActionLoginBonus:       20,
	ActionSearch:           4,
	ActionTabView:          2,
	ActionRatingSubmit:     2,
	ActionStoreVisit:       5,
	ActionAddFavoriteBonus: 10,
	ActionEmailClick:       10,
}

// Points returns the fixed grant for the action.
func (a PointAction) Points() (int64, bool) {
	p, ok := pointsByAction[a]
	return p, ok
}

// ClientReported reports whether the action may be submitted directly by a
// client. Bonuses tied to registration, login, favorites and store visits are
// granted by the server flows that own them.
func (a PointAction) ClientReported() bool {
	switch a {
	case ActionSearch, ActionTabView, ActionRatingSubmit, ActionEmailClick:
		return true
	}
	return false
}
