package templates

// Notifications page: tab bar plus the feed. Tab links fetch only the
// "notifications-feed" fragment when enhanced.

func GetNotificationsTemplate() string {
	return notificationsContent + notificationsFeed
}

var notificationsContent = `{{define "content"}}
<div class="kind-filter" id="notification-tabs" role="tablist">
  {{range .Tabs}}
  <a href="/html/notifications?tab={{.Value}}" role="tab" h-get h-target="#notifications-feed" h-swap="inner" h-replace-url class="{{if .Active}}active{{end}}"{{if .Active}} aria-selected="true"{{end}}>{{.Title}}</a>
  {{end}}
</div>
<div id="notifications-feed">
{{template "notifications-feed" .}}
</div>
{{end}}`

var notificationsFeed = `{{define "notifications-feed"}}
<ul class="notification-list">
{{range .Items}}
<li class="notification-item">
  <header class="notification-header">
    <span class="notification-icon" aria-hidden="true">{{.Icon}}</span>
    {{if .AuthorPicture}}<img src="{{.AuthorPicture}}" alt="" class="avatar" loading="lazy" width="24" height="24">{{end}}
    <div class="notification-meta">
      <span class="notification-author" title="{{.AuthorNpub}}">{{.AuthorName}}</span>
      <span class="notification-action">{{.Label}}</span>
      <time class="notification-time" datetime="{{isoTime .Event.CreatedAt}}">{{.TimeAgo}}</time>
    </div>
  </header>
  {{if .ShowContent}}<div class="notification-content">{{renderContent .Event.Content}}</div>{{end}}
  {{if .TargetEventID}}
  <a href="/html/event/{{.TargetEventID}}" class="notification-link" rel="related">{{i18n "nav.view_post"}} →</a>
  {{else}}
  <a href="/html/event/{{.Event.ID}}" class="notification-link" rel="related">{{i18n "nav.view_post"}} →</a>
  {{end}}
</li>
{{end}}
</ul>
{{if not .Items}}
<div class="empty-state">
  <div class="empty-state-icon" aria-hidden="true">🔔</div>
  <p>{{i18n "msg.no_notifications"}}</p>
</div>
{{end}}
{{end}}`
