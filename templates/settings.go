package templates

// Settings pages: the main menu and its sub pages.

func GetSettingsTemplate() string {
	return settingsContent
}

var settingsContent = `{{define "content"}}
<ul class="settings-list">
{{range .Entries}}
{{if .Section}}
<li class="settings-section" id="{{.Key}}">{{.Title}}</li>
{{else}}
<li class="settings-item" id="settings-{{.Key}}">
  {{if .Action}}
  <form method="POST" action="{{.Action}}" class="inline-form">
    <input type="hidden" name="csrf_token" value="{{$.CSRFToken}}">
    <button type="submit" class="settings-row ghost-btn">{{template "settings-row" .}}</button>
  </form>
  {{else if .Href}}
  <a href="{{.Href}}" class="settings-row">{{template "settings-row" .}} <span class="chevron" aria-hidden="true">›</span></a>
  {{else}}
  <div class="settings-row">{{template "settings-row" .}}</div>
  {{end}}
  {{if .Unlink}}
  <form method="POST" action="{{.Unlink}}" class="inline-form">
    <input type="hidden" name="csrf_token" value="{{$.CSRFToken}}">
    <button type="submit" class="btn-secondary text-danger">{{i18n "btn.unlink"}}</button>
  </form>
  {{end}}
</li>
{{end}}
{{end}}
</ul>
{{end}}
{{define "settings-row"}}{{if .Picture}}<img src="{{.Picture}}" alt="" class="avatar" width="24" height="24" loading="lazy"> {{else if .Icon}}<span class="settings-icon" aria-hidden="true">{{.Icon}}</span> {{end}}<span class="settings-title">{{.Title}}</span>{{if .Subtitle}} <span class="settings-subtitle">{{.Subtitle}}</span>{{end}}{{if .RightText}} <span class="settings-right">{{.RightText}}</span>{{end}}{{end}}`

func GetKeyTemplate() string {
	return keyContent
}

var keyContent = `{{define "content"}}
<section class="key-page">
  {{if .QRCodeDataURL}}<img src="{{.QRCodeDataURL}}" alt="{{i18n "settings.key_qr_alt"}}" class="qr-code" width="256" height="256">{{end}}
  <p><strong>{{i18n "settings.public_key"}}</strong></p>
  <code class="npub">{{.Npub}}</code>
  {{if not .CanSign}}<p class="hint">{{i18n "settings.read_only"}}</p>{{end}}
</section>
{{end}}`

func GetRelaysTemplate() string {
	return relaysContent
}

var relaysContent = `{{define "content"}}
<ul class="relay-list">
{{range .Relays}}<li class="relay-item">{{.}}</li>{{end}}
</ul>
{{end}}`

func GetMutedTemplate() string {
	return mutedContent
}

var mutedContent = `{{define "content"}}
{{if .Muted}}
<ul class="muted-list">
{{range .Muted}}<li><code>{{.}}</code></li>{{end}}
</ul>
{{else}}
<div class="empty-state"><p>{{i18n "msg.no_muted"}}</p></div>
{{end}}
{{end}}`

func GetWalletTemplate() string {
	return walletContent
}

var walletContent = `{{define "content"}}
<form method="POST" action="/html/settings/wallet" class="wallet-form">
  <input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
  <label for="wallet-type">{{i18n "wallet.type"}}</label>
  <select id="wallet-type" name="type">
    {{range .WalletTypes}}<option value="{{.Value}}">{{.Title}}</option>{{end}}
  </select>
  <label for="wallet-name">{{i18n "wallet.name"}}</label>
  <input id="wallet-name" name="name" type="text" maxlength="64">
  <button type="submit" class="btn-primary">{{i18n "btn.link_wallet"}}</button>
</form>
{{end}}`

func GetUnpublishedTemplate() string {
	return unpublishedContent
}

var unpublishedContent = `{{define "content"}}
{{if .Entries}}
<form method="POST" action="/html/settings/unpublished/retry" class="inline-form">
  <input type="hidden" name="csrf_token" value="{{.CSRFToken}}">
  <button type="submit" class="btn-primary">{{i18n "btn.retry_all"}}</button>
</form>
<ul class="unpublished-list">
{{range .Entries}}
<li class="unpublished-item">
  <span class="kind">{{kindLabel .Event.Kind}}</span>
  <code title="{{.Event.ID}}">{{shortID .Event.ID}}</code>
  <span class="attempts">{{.Attempts}}×</span>
  {{if .LastError}}<span class="error">{{.LastError}}</span>{{end}}
  <form method="POST" action="/html/settings/unpublished/remove" class="inline-form">
    <input type="hidden" name="csrf_token" value="{{$.CSRFToken}}">
    <input type="hidden" name="event_id" value="{{.Event.ID}}">
    <button type="submit" class="btn-secondary">{{i18n "btn.discard"}}</button>
  </form>
</li>
{{end}}
</ul>
{{else}}
<div class="empty-state"><p>{{i18n "msg.no_unpublished"}}</p></div>
{{end}}
{{end}}`
