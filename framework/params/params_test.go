package params

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"revoltkit/args"
	"revoltkit/cache"
	"revoltkit/framework"
	"revoltkit/models"
	"revoltkit/rest"
)

const (
	testUserID    = "01AAAAAAAAAAAAAAAAAAAAAAAA"
	testChannelID = "01BBBBBBBBBBBBBBBBBBBBBBBB"
	testServerID  = "01CCCCCCCCCCCCCCCCCCCCCCCC"
)

type mockAPI struct {
	users    map[models.UserID]models.User
	channels map[models.ChannelID]models.Channel
	servers  map[models.ServerID]models.Server
	members  map[models.MemberCompositeID]models.Member

	err error

	fetchUserCalls    int
	fetchChannelCalls int
	fetchMemberCalls  int
}

func (m *mockAPI) FetchUser(_ context.Context, id models.UserID) (models.User, error) {
	m.fetchUserCalls++
	if m.err != nil {
		return models.User{}, m.err
	}
	u, ok := m.users[id]
	if !ok {
		return models.User{}, &rest.Error{Status: 404}
	}
	return u, nil
}

func (m *mockAPI) FetchChannel(_ context.Context, id models.ChannelID) (models.Channel, error) {
	m.fetchChannelCalls++
	if m.err != nil {
		return models.Channel{}, m.err
	}
	ch, ok := m.channels[id]
	if !ok {
		return models.Channel{}, &rest.Error{Status: 404}
	}
	return ch, nil
}

func (m *mockAPI) FetchServer(_ context.Context, id models.ServerID) (models.Server, error) {
	if m.err != nil {
		return models.Server{}, m.err
	}
	s, ok := m.servers[id]
	if !ok {
		return models.Server{}, &rest.Error{Status: 404}
	}
	return s, nil
}

func (m *mockAPI) FetchMember(_ context.Context, server models.ServerID,
	user models.UserID) (models.Member, error) {
	m.fetchMemberCalls++
	if m.err != nil {
		return models.Member{}, m.err
	}
	mem, ok := m.members[models.MemberCompositeID{Server: server, User: user}]
	if !ok {
		return models.Member{}, &rest.Error{Status: 404}
	}
	return mem, nil
}

func (m *mockAPI) SendMessage(_ context.Context, _ models.ChannelID,
	_ rest.SendMessageParams) (models.Message, error) {
	return models.Message{}, m.err
}

func testMsg() *framework.Msg {
	return &framework.Msg{
		Message: &models.Message{
			ID:      "01DDDDDDDDDDDDDDDDDDDDDDDD",
			Channel: testChannelID,
			Author:  testUserID,
		},
	}
}

func token(s string) args.Token {
	return args.Token{Text: s}
}

func TestTextPassthrough(t *testing.T) {
	got, err := Text("").FromToken(t.Context(), &framework.Context{}, testMsg(), token(" raw "))

	require.NoError(t, err)
	assert.Equal(t, Text(" raw "), got)
}

func TestUserIDFromToken(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    UserID
		wantErr error
	}{
		{
			name:  "raw id",
			token: testUserID,
			want:  UserID(testUserID),
		},
		{
			name:  "mention",
			token: "<@" + testUserID + ">",
			want:  UserID(testUserID),
		},
		{
			name:    "unterminated mention",
			token:   "<@" + testUserID,
			wantErr: ErrMentionDelimiter,
		},
		{
			name:    "missing open delimiter",
			token:   testUserID + ">",
			wantErr: ErrMentionDelimiter,
		},
		{
			name:    "wrong length",
			token:   "abc",
			wantErr: models.ErrInvalidID,
		},
		{
			name:    "bad charset",
			token:   "01AAAAAAAAAAAAAAAAAAAAAAAu",
			wantErr: models.ErrInvalidID,
		},
		{
			name:    "invalid id inside mention",
			token:   "<@notanid>",
			wantErr: models.ErrInvalidID,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := UserID("").FromToken(t.Context(), &framework.Context{}, testMsg(), token(tc.token))

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestChannelIDFromToken(t *testing.T) {
	got, err := ChannelID("").FromToken(t.Context(), &framework.Context{}, testMsg(),
		token("<#"+testChannelID+">"))

	require.NoError(t, err)
	assert.Equal(t, ChannelID(testChannelID), got)
}

func TestUserResolvesThroughCacheFirst(t *testing.T) {
	api := &mockAPI{}
	cc := cache.New(cache.Options{})
	cc.PutUser(models.User{ID: testUserID, Username: "cached"})
	fc := &framework.Context{API: api, Cache: cc}

	got, err := User{}.FromToken(t.Context(), fc, testMsg(), token(testUserID))

	require.NoError(t, err)
	assert.Equal(t, "cached", got.Username)
	assert.Zero(t, api.fetchUserCalls)
}

func TestUserFetchesAndBackfillsOnCacheMiss(t *testing.T) {
	api := &mockAPI{users: map[models.UserID]models.User{
		testUserID: {ID: testUserID, Username: "fetched"},
	}}
	fc := &framework.Context{API: api, Cache: cache.New(cache.Options{})}

	got, err := User{}.FromToken(t.Context(), fc, testMsg(), token(testUserID))
	require.NoError(t, err)
	assert.Equal(t, "fetched", got.Username)

	_, err = User{}.FromToken(t.Context(), fc, testMsg(), token(testUserID))
	require.NoError(t, err)

	assert.Equal(t, 1, api.fetchUserCalls)
}

func TestUserFetchErrorPropagates(t *testing.T) {
	api := &mockAPI{err: errors.New("network down")}
	fc := &framework.Context{API: api}

	_, err := User{}.FromToken(t.Context(), fc, testMsg(), token(testUserID))

	require.Error(t, err)
}

func TestChannelResolvesEntity(t *testing.T) {
	api := &mockAPI{channels: map[models.ChannelID]models.Channel{
		testChannelID: {ID: testChannelID, Name: "general"},
	}}
	fc := &framework.Context{API: api}

	got, err := Channel{}.FromToken(t.Context(), fc, testMsg(), token(testChannelID))

	require.NoError(t, err)
	assert.Equal(t, "general", got.Name)
}

func TestOptionYieldsValueWhenTokenParses(t *testing.T) {
	got, err := Option[UserID]{}.FromToken(t.Context(), &framework.Context{}, testMsg(),
		token(testUserID))

	require.NoError(t, err)
	assert.True(t, got.OK)
	assert.Equal(t, UserID(testUserID), got.Value)
}

func TestOptionPushesBackUnparsableToken(t *testing.T) {
	got, err := Option[UserID]{}.FromToken(t.Context(), &framework.Context{}, testMsg(),
		token("notanid"))

	require.ErrorIs(t, err, framework.ErrPushBack)
	assert.False(t, got.OK)
}

func TestOptionFallbackIsEmptyWithoutError(t *testing.T) {
	got, err := Option[UserID]{}.FallbackArg(t.Context(), &framework.Context{}, testMsg())

	require.NoError(t, err)
	assert.False(t, got.OK)
}

// The push-back law: a token an Option declined must be observed verbatim
// by the next parameter in the same tuple.
func TestOptionPushBackRoundTrip(t *testing.T) {
	var opt Option[UserID]
	var text Text

	h := framework.Args2(func(_ context.Context, _ *framework.Context, _ *framework.Msg,
		p1 Option[UserID], p2 Text) error {
		opt, text = p1, p2
		return nil
	})

	m := testMsg()
	m.Args = "notanid"
	err := h(t.Context(), &framework.Context{}, m, args.Config{})

	require.NoError(t, err)
	assert.False(t, opt.OK)
	assert.Equal(t, Text("notanid"), text)
}

func TestOptionConsumesTokenWhenItParses(t *testing.T) {
	var opt Option[UserID]
	var text Text

	h := framework.Args2(func(_ context.Context, _ *framework.Context, _ *framework.Msg,
		p1 Option[UserID], p2 Text) error {
		opt, text = p1, p2
		return nil
	})

	m := testMsg()
	m.Args = testUserID + " trailing"
	err := h(t.Context(), &framework.Context{}, m, args.Config{})

	require.NoError(t, err)
	assert.True(t, opt.OK)
	assert.Equal(t, Text("trailing"), text)
}

func TestRestConsumesRemainder(t *testing.T) {
	var first Text
	var tail Rest[Text]

	h := framework.Args2(func(_ context.Context, _ *framework.Context, _ *framework.Msg,
		p1 Text, p2 Rest[Text]) error {
		first, tail = p1, p2
		return nil
	})

	m := testMsg()
	m.Args = "head all the rest"
	err := h(t.Context(), &framework.Context{}, m, args.Config{})

	require.NoError(t, err)
	assert.Equal(t, Text("head"), first)
	assert.Equal(t, Text("all the rest"), tail.Value)
}

func TestUnquoteStripsOneLayer(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  Text
	}{
		{name: "quoted", token: `"hello world"`, want: Text("hello world")},
		{name: "nested quotes keep inner layer", token: `""hi""`, want: Text(`"hi"`)},
		{name: "unquoted passes through", token: "plain", want: Text("plain")},
		{name: "lone quote passes through", token: `"`, want: Text(`"`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Unquote[Text]{}.FromToken(t.Context(), &framework.Context{}, testMsg(),
				token(tc.token))

			require.NoError(t, err)
			assert.Equal(t, tc.want, got.Value)
		})
	}
}

func TestRawArgsPassesWholeString(t *testing.T) {
	var first Text
	var raw RawArgs

	h := framework.Args2(func(_ context.Context, _ *framework.Context, _ *framework.Msg,
		p1 Text, p2 RawArgs) error {
		first, raw = p1, p2
		return nil
	})

	m := testMsg()
	m.Args = "one two three"
	err := h(t.Context(), &framework.Context{}, m, args.Config{})

	require.NoError(t, err)
	assert.Equal(t, Text("one"), first)
	// RawArgs sees the full argument string, not the lexer position.
	assert.Equal(t, RawArgs("one two three"), raw)
}

func TestAuthorResolvesInvokingUser(t *testing.T) {
	api := &mockAPI{users: map[models.UserID]models.User{
		testUserID: {ID: testUserID, Username: "invoker"},
	}}
	fc := &framework.Context{API: api}

	got, err := Author{}.FromToken(t.Context(), fc, testMsg(), args.Token{})

	require.NoError(t, err)
	assert.Equal(t, "invoker", got.Username)
}

func TestMemberResolvesMembership(t *testing.T) {
	memberID := models.MemberCompositeID{Server: testServerID, User: testUserID}
	api := &mockAPI{
		channels: map[models.ChannelID]models.Channel{
			testChannelID: {ID: testChannelID, ChannelType: models.ChannelTypeText, Server: testServerID},
		},
		members: map[models.MemberCompositeID]models.Member{
			memberID: {ID: memberID, Nickname: "nick"},
		},
	}
	fc := &framework.Context{API: api}

	got, err := Member{}.FromToken(t.Context(), fc, testMsg(), args.Token{})

	require.NoError(t, err)
	assert.Equal(t, "nick", got.Nickname)
}

func TestMemberFailsOutsideServer(t *testing.T) {
	api := &mockAPI{
		channels: map[models.ChannelID]models.Channel{
			testChannelID: {ID: testChannelID, ChannelType: models.ChannelTypeGroup},
		},
	}
	fc := &framework.Context{API: api}

	_, err := Member{}.FromToken(t.Context(), fc, testMsg(), args.Token{})

	require.ErrorIs(t, err, framework.ErrNotInServer)
	assert.Zero(t, api.fetchMemberCalls)
}
