// Package dashboarditem implements the hello dashboard item: a view screen
// that greets the user and shows one text preference, and an edit screen
// whose form saves that preference through the host.
//
// The host owns the lifecycle. It constructs an Item once, then calls Render
// for the view screen and RenderEdit for the edit screen, passing the mount
// point and the raw preferences each time:
//
//	item, err := dashboarditem.New(h, dashboarditem.WithOrigin(origin))
//	...
//	form, err := item.RenderEdit(ctx, mount, raw)
//	if form != nil {
//		_ = form.SetValue("exampleInput", "New value")
//		err = form.Save(ctx)
//	}
//
// RenderEdit returns a nil form when the host reports the item is not
// editable; the host has then been asked to close the edit screen.
package dashboarditem
