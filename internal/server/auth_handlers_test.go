package server_test

import (
	"net/http"
	"testing"

	"github.com/appleboy/gofight/v2"
	"github.com/stretchr/testify/assert"
	"github.com/valyala/fastjson"
)

func TestRequestSignup(t *testing.T) {
	engine, _, r, cleanup := setup()
	defer cleanup()

	params := gofight.D{}
	r.POST("/auth/signup").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation","message":"Validation Error","fields":{"email":"Valid email is required","password":"Password must be at least 6 characters"}}}`, r.Body.String())
	})

	params["email"] = "george.abitbol@nowhere.lan"
	params["password"] = "short"
	r.POST("/auth/signup").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation","message":"Validation Error","fields":{"password":"Password must be at least 6 characters"}}}`, r.Body.String())
	})

	params["name"] = "George Abitbol"
	params["password"] = "password42"
	r.POST("/auth/signup").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusCreated, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		assert.Regexp(t, `^[\w-]+\.[\w-]+\.[\w-]+$`, string(v.Get("token").GetStringBytes()))
		assert.Regexp(t, `^[a-fA-F0-9]{8}-[a-fA-F0-9]{4}-4[a-fA-F0-9]{3}-[8|9|aA|bB][a-fA-F0-9]{3}-[a-fA-F0-9]{12}$`, string(v.Get("user", "_id").GetStringBytes()))
		assert.Equal(t, params["name"], string(v.Get("user", "name").GetStringBytes()))
		assert.Equal(t, params["email"], string(v.Get("user", "email").GetStringBytes()))
		assert.Nil(t, v.Get("user", "password"))
	})

	// The email is now taken.
	r.POST("/auth/signup").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"validation","message":"This email is already registered.","fields":{"email":"This email is already registered."}}}`, r.Body.String())
	})
}

func TestRequestSignupDisabled(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	ioc.NoRegistration = true
	engine = rebuild(ioc)

	params := gofight.D{
		"email":    "george.abitbol@nowhere.lan",
		"password": "password42",
	}
	r.POST("/auth/signup").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusNotFound, r.Code)
	})
}

func TestRequestLogin(t *testing.T) {
	engine, ioc, r, cleanup := setup()
	defer cleanup()

	user := createUser(ioc)

	params := gofight.D{}
	r.POST("/auth/login").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusBadRequest, r.Code)
		assert.JSONEq(t, `{"error":{"message":"No email or password provided."}}`, r.Body.String())
	})

	params["email"] = user.Email
	params["password"] = "wrong-password"
	r.POST("/auth/login").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"Invalid email or password."}}`, r.Body.String())
	})

	params["email"] = "nobody@nowhere.lan"
	params["password"] = "password42"
	r.POST("/auth/login").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusUnauthorized, r.Code)
		assert.JSONEq(t, `{"error":{"tag":"invalid-auth","message":"Invalid email or password."}}`, r.Body.String())
	})

	params["email"] = user.Email
	r.POST("/auth/login").SetJSON(params).Run(engine, func(r gofight.HTTPResponse, rq gofight.HTTPRequest) {
		assert.Equal(t, http.StatusOK, r.Code)

		v, err := fastjson.Parse(r.Body.String())
		assert.NoError(t, err)

		assert.Regexp(t, `^[\w-]+\.[\w-]+\.[\w-]+$`, string(v.Get("token").GetStringBytes()))
		assert.Equal(t, user.ID, string(v.Get("user", "_id").GetStringBytes()))
		assert.Equal(t, user.Email, string(v.Get("user", "email").GetStringBytes()))
	})
}
