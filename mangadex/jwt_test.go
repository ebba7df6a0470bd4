package mangadex

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/smartystreets/goconvey/convey"
)

func signToken(claims jwt.Claims) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("not the api key"))
	if err != nil {
		panic(err)
	}
	return token
}

func TestClaims(t *testing.T) {
	issued := time.Date(2021, 6, 1, 10, 0, 0, 0, time.UTC)

	session := signToken(SessionClaims{
		RefreshClaims: RefreshClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				Issuer:    "mangadex.org",
				Audience:  jwt.ClaimStrings{"mangadex.org"},
				IssuedAt:  jwt.NewNumericDate(issued),
				NotBefore: jwt.NewNumericDate(issued),
				ExpiresAt: jwt.NewNumericDate(issued.Add(15 * time.Minute)),
			},
			Type:      "session",
			UserID:    "e9e5d3b1-1c9d-4b1f-9d8e-0d9f1f3b2a10",
			SessionID: "0b0c0d0e-0000-4000-8000-000000000001",
		},
		Roles:       []string{"ROLE_MEMBER"},
		Permissions: []string{"manga.view", "chapter.view"},
	})

	refresh := signToken(RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(issued.Add(30 * 24 * time.Hour))},
		Type:             "refresh",
	})

	Convey("Given a session token", t, func() {
		claims, err := ParseSessionClaims(session)
		So(err, ShouldBeNil)

		Convey("The claims should be decoded without a key", func() {
			So(claims.Issuer, ShouldEqual, "mangadex.org")
			So(claims.UserID, ShouldEqual, "e9e5d3b1-1c9d-4b1f-9d8e-0d9f1f3b2a10")
			So(claims.Roles, ShouldResemble, []string{"ROLE_MEMBER"})
			So(claims.Permissions, ShouldHaveLength, 2)
		})

		Convey("Expiry should follow the exp claim", func() {
			So(claims.ExpiredAt(issued.Add(time.Minute)), ShouldBeFalse)
			So(claims.ExpiredAt(issued.Add(15*time.Minute)), ShouldBeTrue)
			So(claims.ExpiresIn(issued.Add(5*time.Minute)), ShouldEqual, 10*time.Minute)
			So(claims.ExpiresIn(issued.Add(time.Hour)), ShouldEqual, time.Duration(0))
		})

		Convey("Credentials should report the session expiry", func() {
			creds := Credentials{Session: session, Refresh: refresh}
			So(creds.SessionExpired(issued), ShouldBeFalse)
			So(creds.SessionExpired(issued.Add(time.Hour)), ShouldBeTrue)
		})

		Convey("It should not pass for a refresh token", func() {
			_, err := ParseRefreshClaims(session)
			So(err, ShouldNotBeNil)
		})
	})

	Convey("Given a refresh token", t, func() {
		claims, err := ParseRefreshClaims(refresh)
		So(err, ShouldBeNil)
		So(claims.ExpiredAt(issued.Add(29*24*time.Hour)), ShouldBeFalse)

		_, err = ParseSessionClaims(refresh)
		So(err, ShouldNotBeNil)
	})

	Convey("Given garbage", t, func() {
		_, err := ParseSessionClaims("sessiontoken")
		So(err, ShouldNotBeNil)
		So(Credentials{Session: "sessiontoken"}.SessionExpired(time.Now()), ShouldBeTrue)
	})
}
