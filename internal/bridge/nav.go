package bridge

// Navigation intents. All are fire-and-forget: the host takes over the
// screen, so no reply is expected.

// GoHome asks the host to switch to the given home tab.
func GoHome(n Notifier, tab string) error {
	return n.Notify(ActionGoHome, map[string]interface{}{"tab": tab})
}

// GoStoreDetail asks the host to open a store detail screen.
func GoStoreDetail(n Notifier, storeID int, storeName string) error {
	payload := map[string]interface{}{}
	if storeID != 0 {
		payload["storeId"] = storeID
	}
	if storeName != "" {
		payload["storeName"] = storeName
	}
	return n.Notify(ActionGoStoreDetail, payload)
}

// GoBack asks the host to pop the current screen.
func GoBack(n Notifier) error {
	return n.Notify(ActionGoBack, map[string]interface{}{})
}
