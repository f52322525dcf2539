package match_test

import (
	"context"
	"testing"

	"code.wagernet.io/wager/events"
	"code.wagernet.io/wager/ledger"
	"code.wagernet.io/wager/logging"
	"code.wagernet.io/wager/match"
	"code.wagernet.io/wager/match/mocks"
	"code.wagernet.io/wager/types"
	"code.wagernet.io/wager/types/num"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	owner    = "owner-party"
	gateway  = "gateway-party"
	store    = "store-party"
	p1       = "player-1"
	p2       = "player-2"
	outsider = "outsider"
)

type tstEngine struct {
	*match.Engine
	ctrl   *gomock.Controller
	ledger *ledger.Engine
	broker *mocks.MockBroker
}

// getTestEngine wires the match engine to a real ledger, balance assertions
// are the whole point of most of these tests.
func getTestEngine(t *testing.T) *tstEngine {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := logging.NewTestLogger()
	ldgr := ledger.New(log, ledger.NewDefaultConfig(), owner)
	require.NoError(t, ldgr.SetStore(owner, store))
	broker := mocks.NewMockBroker(ctrl)
	eng := match.New(log, match.NewDefaultConfig(), ldgr, broker, owner, gateway)
	return &tstEngine{
		Engine: eng,
		ctrl:   ctrl,
		ledger: ldgr,
		broker: broker,
	}
}

func (e *tstEngine) fund(t *testing.T, party string, amount uint64) {
	t.Helper()
	require.NoError(t, e.ledger.Issue(context.Background(), store, party, num.NewUint(amount)))
}

func (e *tstEngine) approve(t *testing.T, party string, amount uint64) {
	t.Helper()
	require.NoError(t, e.ledger.Approve(context.Background(), party, e.EscrowParty(), num.NewUint(amount)))
}

func TestMatchLifecycle(t *testing.T) {
	t.Run("Full happy path settles the loser's stake on the winner", testHappyPath)
	t.Run("Match ids are never reused", testDuplicateID)
	t.Run("Create requires a positive stake", testInvalidStake)
	t.Run("Create distinguishes allowance and balance failures", testCreateFailureModes)
	t.Run("Join rules", testJoinRules)
	t.Run("Only the gateway may submit results", testSubmitNotGateway)
	t.Run("Submit result rules", testSubmitRules)
	t.Run("Cancel rules", testCancelRules)
	t.Run("Cancelling an open match is a zero sum round trip", testCancelRefund)
	t.Run("Concurrent matches account escrow individually", testEscrowAccounting)
}

func testHappyPath(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()
	ctx := context.Background()
	stake := num.NewUint(10)

	eng.fund(t, p1, 100)
	eng.fund(t, p2, 100)
	eng.approve(t, p1, 10)
	eng.approve(t, p2, 10)

	gomock.InOrder(
		eng.broker.EXPECT().Send(gomock.Any()).Times(1).Do(func(e events.Event) {
			ce, ok := e.(*events.MatchCreated)
			require.True(t, ok)
			assert.Equal(t, "match-1", ce.MatchID())
			assert.Equal(t, p1, ce.Creator())
			assert.True(t, ce.Stake().EQ(stake))
		}),
		eng.broker.EXPECT().Send(gomock.Any()).Times(1).Do(func(e events.Event) {
			je, ok := e.(*events.MatchJoined)
			require.True(t, ok)
			assert.Equal(t, p2, je.Opponent())
		}),
		eng.broker.EXPECT().Send(gomock.Any()).Times(1).Do(func(e events.Event) {
			re, ok := e.(*events.MatchResolved)
			require.True(t, ok)
			assert.Equal(t, p2, re.Winner())
		}),
	)

	require.NoError(t, eng.Create(ctx, p1, "match-1", stake))
	assert.True(t, eng.ledger.BalanceOf(eng.EscrowParty()).EQ(stake))

	require.NoError(t, eng.Join(ctx, p2, "match-1"))
	assert.True(t, eng.ledger.BalanceOf(eng.EscrowParty()).EQ(num.NewUint(20)))

	require.NoError(t, eng.SubmitResult(ctx, gateway, "match-1", p2))

	// winner nets the loser's stake, escrow is empty
	assert.True(t, eng.ledger.BalanceOf(p1).EQ(num.NewUint(90)))
	assert.True(t, eng.ledger.BalanceOf(p2).EQ(num.NewUint(110)))
	assert.True(t, eng.ledger.BalanceOf(eng.EscrowParty()).IsZero())

	m, err := eng.Match("match-1")
	require.NoError(t, err)
	assert.Equal(t, types.MatchStatusResolved, m.Status)
	assert.Equal(t, p2, m.Winner)
	assert.True(t, m.Escrowed().IsZero())
}

func testDuplicateID(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()
	ctx := context.Background()
	eng.broker.EXPECT().Send(gomock.Any()).AnyTimes()

	eng.fund(t, p1, 100)
	eng.approve(t, p1, 100)
	require.NoError(t, eng.Create(ctx, p1, "match-1", num.NewUint(10)))

	// same id, any stake, any party
	assert.ErrorIs(t, eng.Create(ctx, p1, "match-1", num.NewUint(10)), match.ErrDuplicateMatch)
	assert.ErrorIs(t, eng.Create(ctx, p2, "match-1", num.NewUint(99)), match.ErrDuplicateMatch)

	// terminal matches hold their id forever
	require.NoError(t, eng.Cancel(ctx, owner, "match-1"))
	assert.ErrorIs(t, eng.Create(ctx, p1, "match-1", num.NewUint(10)), match.ErrDuplicateMatch)
}

func testInvalidStake(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()
	ctx := context.Background()
	assert.ErrorIs(t, eng.Create(ctx, p1, "match-1", num.UintZero()), match.ErrInvalidStake)
	assert.ErrorIs(t, eng.Create(ctx, p1, "match-1", nil), match.ErrInvalidStake)
	assert.ErrorIs(t, eng.Create(ctx, p1, "", num.NewUint(1)), match.ErrInvalidMatchID)
	// nothing was recorded
	_, err := eng.Match("match-1")
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
}

func testCreateFailureModes(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()
	ctx := context.Background()

	// funded but no allowance granted to the escrow party
	eng.fund(t, p1, 100)
	err := eng.Create(ctx, p1, "match-1", num.NewUint(10))
	assert.ErrorIs(t, err, ledger.ErrInsufficientAllowance)

	// allowance granted but balance short
	eng.approve(t, p2, 1000)
	err = eng.Create(ctx, p2, "match-2", num.NewUint(10))
	assert.ErrorIs(t, err, ledger.ErrInsufficientBalance)

	// neither attempt left a record behind
	_, err = eng.Match("match-1")
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
	_, err = eng.Match("match-2")
	assert.ErrorIs(t, err, match.ErrMatchNotFound)
	assert.True(t, eng.ledger.BalanceOf(eng.EscrowParty()).IsZero())
}

func testJoinRules(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()
	ctx := context.Background()
	eng.broker.EXPECT().Send(gomock.Any()).AnyTimes()

	eng.fund(t, p1, 100)
	eng.fund(t, p2, 100)
	eng.approve(t, p1, 100)

	assert.ErrorIs(t, eng.Join(ctx, p2, "nope"), match.ErrMatchNotFound)

	require.NoError(t, eng.Create(ctx, p1, "match-1", num.NewUint(10)))
	assert.ErrorIs(t, eng.Join(ctx, p1, "match-1"), match.ErrSelfJoin)

	// no allowance yet, the match stays open and unpaired
	assert.ErrorIs(t, eng.Join(ctx, p2, "match-1"), ledger.ErrInsufficientAllowance)
	m, err := eng.Match("match-1")
	require.NoError(t, err)
	assert.Equal(t, types.MatchStatusOpen, m.Status)
	assert.Empty(t, m.Opponent)

	eng.approve(t, p2, 100)
	require.NoError(t, eng.Join(ctx, p2, "match-1"))
	m, err = eng.Match("match-1")
	require.NoError(t, err)
	assert.Equal(t, types.MatchStatusActive, m.Status)
	assert.Equal(t, p2, m.Opponent)

	// active matches cannot be joined again
	assert.ErrorIs(t, eng.Join(ctx, outsider, "match-1"), match.ErrMatchNotOpen)
}

func testSubmitNotGateway(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()
	ctx := context.Background()
	eng.broker.EXPECT().Send(gomock.Any()).AnyTimes()

	// rejected on a match that does not even exist
	assert.ErrorIs(t, eng.SubmitResult(ctx, outsider, "nope", p1), match.ErrNotGateway)

	eng.fund(t, p1, 100)
	eng.fund(t, p2, 100)
	eng.approve(t, p1, 100)
	eng.approve(t, p2, 100)
	require.NoError(t, eng.Create(ctx, p1, "match-1", num.NewUint(10)))

	// rejected whatever the match state, owner and participants included
	assert.ErrorIs(t, eng.SubmitResult(ctx, owner, "match-1", p1), match.ErrNotGateway)
	require.NoError(t, eng.Join(ctx, p2, "match-1"))
	assert.ErrorIs(t, eng.SubmitResult(ctx, p1, "match-1", p1), match.ErrNotGateway)
	assert.ErrorIs(t, eng.SubmitResult(ctx, outsider, "match-1", p2), match.ErrNotGateway)
}

func testSubmitRules(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()
	ctx := context.Background()
	eng.broker.EXPECT().Send(gomock.Any()).AnyTimes()

	assert.ErrorIs(t, eng.SubmitResult(ctx, gateway, "nope", p1), match.ErrMatchNotFound)

	eng.fund(t, p1, 100)
	eng.fund(t, p2, 100)
	eng.approve(t, p1, 100)
	eng.approve(t, p2, 100)
	require.NoError(t, eng.Create(ctx, p1, "match-1", num.NewUint(10)))

	// open, not active yet
	assert.ErrorIs(t, eng.SubmitResult(ctx, gateway, "match-1", p1), match.ErrMatchNotActive)

	require.NoError(t, eng.Join(ctx, p2, "match-1"))
	assert.ErrorIs(t, eng.SubmitResult(ctx, gateway, "match-1", outsider), match.ErrInvalidWinner)

	require.NoError(t, eng.SubmitResult(ctx, gateway, "match-1", p1))

	// terminal is terminal
	assert.ErrorIs(t, eng.SubmitResult(ctx, gateway, "match-1", p2), match.ErrMatchNotActive)
	m, err := eng.Match("match-1")
	require.NoError(t, err)
	assert.Equal(t, p1, m.Winner)
}

func testCancelRules(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()
	ctx := context.Background()
	eng.broker.EXPECT().Send(gomock.Any()).AnyTimes()

	assert.ErrorIs(t, eng.Cancel(ctx, owner, "nope"), match.ErrMatchNotFound)
	assert.ErrorIs(t, eng.Cancel(ctx, p1, "nope"), match.ErrNotOwner)

	eng.fund(t, p1, 100)
	eng.fund(t, p2, 100)
	eng.approve(t, p1, 100)
	eng.approve(t, p2, 100)
	require.NoError(t, eng.Create(ctx, p1, "match-1", num.NewUint(10)))

	// not the owner, creator included
	assert.ErrorIs(t, eng.Cancel(ctx, p1, "match-1"), match.ErrNotOwner)

	// a joined match can no longer be unwound by the owner
	require.NoError(t, eng.Join(ctx, p2, "match-1"))
	assert.ErrorIs(t, eng.Cancel(ctx, owner, "match-1"), match.ErrMatchNotOpen)

	// resolved is just as final
	require.NoError(t, eng.SubmitResult(ctx, gateway, "match-1", p2))
	assert.ErrorIs(t, eng.Cancel(ctx, owner, "match-1"), match.ErrMatchNotOpen)
}

func testCancelRefund(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()
	ctx := context.Background()
	eng.broker.EXPECT().Send(gomock.Any()).AnyTimes()

	eng.fund(t, p1, 100)
	eng.approve(t, p1, 100)
	require.NoError(t, eng.Create(ctx, p1, "match-1", num.NewUint(25)))
	assert.True(t, eng.ledger.BalanceOf(p1).EQ(num.NewUint(75)))

	require.NoError(t, eng.Cancel(ctx, owner, "match-1"))

	// exact refund, zero net change over create+cancel
	assert.True(t, eng.ledger.BalanceOf(p1).EQ(num.NewUint(100)))
	assert.True(t, eng.ledger.BalanceOf(eng.EscrowParty()).IsZero())

	m, err := eng.Match("match-1")
	require.NoError(t, err)
	assert.Equal(t, types.MatchStatusCancelled, m.Status)
	assert.True(t, m.Escrowed().IsZero())
}

func testEscrowAccounting(t *testing.T) {
	eng := getTestEngine(t)
	defer eng.ctrl.Finish()
	ctx := context.Background()
	eng.broker.EXPECT().Send(gomock.Any()).AnyTimes()

	eng.fund(t, p1, 100)
	eng.fund(t, p2, 100)
	eng.approve(t, p1, 100)
	eng.approve(t, p2, 100)

	require.NoError(t, eng.Create(ctx, p1, "match-1", num.NewUint(10)))
	require.NoError(t, eng.Create(ctx, p2, "match-2", num.NewUint(30)))
	require.NoError(t, eng.Join(ctx, p2, "match-1"))

	// escrow pool = 2x10 for the active match + 30 for the open one
	assert.True(t, eng.ledger.BalanceOf(eng.EscrowParty()).EQ(num.NewUint(50)))

	m1, err := eng.Match("match-1")
	require.NoError(t, err)
	m2, err := eng.Match("match-2")
	require.NoError(t, err)
	assert.True(t, m1.Escrowed().EQ(num.NewUint(20)))
	assert.True(t, m2.Escrowed().EQ(num.NewUint(30)))
	assert.True(t, num.Sum(m1.Escrowed(), m2.Escrowed()).EQ(eng.ledger.BalanceOf(eng.EscrowParty())))

	// settling one match leaves the other's escrow untouched
	require.NoError(t, eng.SubmitResult(ctx, gateway, "match-1", p1))
	assert.True(t, eng.ledger.BalanceOf(eng.EscrowParty()).EQ(num.NewUint(30)))
}
