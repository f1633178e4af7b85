package templates

// Login page: a private key logs in with signing, a public key logs in read-only.

func GetLoginTemplate() string {
	return loginContent
}

var loginContent = `{{define "content"}}
<form method="POST" action="/html/login" class="login-form">
  <input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
  <label for="key">{{i18n "login.key_label"}}</label>
  <input id="key" name="key" type="password" autocomplete="off" required placeholder="nsec1… / npub1…">
  <p class="hint">{{i18n "login.key_hint"}}</p>
  <button type="submit" class="btn-primary">{{i18n "btn.login"}}</button>
</form>
{{end}}`
