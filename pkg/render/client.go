package render

// clientScript is the browser side of the live session. It speaks the
// binary frames defined in pkg/protocol: a handshake carrying the session
// ID, one event frame per pointer signal on elements marked data-on-*, and
// patch frames that replace an element's outer HTML by data-hid.
const clientScript = `(function () {
  var me = document.currentScript;
  var path = me.getAttribute("data-live-path");
  var session = me.getAttribute("data-session");
  var TYPES = { click: 1, mouseenter: 6, mouseleave: 7 };
  var enc = new TextEncoder(), dec = new TextDecoder(), seq = 0;

  function uvarint(out, v) {
    while (v >= 0x80) { out.push((v & 0x7f) | 0x80); v = Math.floor(v / 128); }
    out.push(v);
  }
  function str(out, s) {
    var b = enc.encode(s);
    uvarint(out, b.length);
    for (var i = 0; i < b.length; i++) out.push(b[i]);
  }
  function frame(type, payload) {
    var b = new Uint8Array(4 + payload.length);
    b[0] = type; b[1] = 0;
    b[2] = (payload.length >> 8) & 0xff; b[3] = payload.length & 0xff;
    b.set(payload, 4);
    return b;
  }
  function reader(buf) {
    var d = new Uint8Array(buf), o = 0;
    return {
      byte: function () { return d[o++]; },
      skip: function (n) { o += n; },
      uvarint: function () {
        var r = 0, s = 1, b;
        do { b = d[o++]; r += (b & 0x7f) * s; s *= 128; } while (b & 0x80);
        return r;
      },
      str: function () {
        var n = this.uvarint(), s = dec.decode(d.subarray(o, o + n));
        o += n;
        return s;
      }
    };
  }

  var url = (location.protocol === "https:" ? "wss://" : "ws://") + location.host + path;
  var ws = new WebSocket(url);
  ws.binaryType = "arraybuffer";

  function send(hid, type) {
    if (ws.readyState !== 1) return;
    var p = [];
    uvarint(p, ++seq);
    str(p, hid);
    p.push(type);
    ws.send(frame(1, p));
  }
  function bind(scope) {
    Object.keys(TYPES).forEach(function (name) {
      var sel = "[data-on-" + name + "]";
      var els = Array.prototype.slice.call(scope.querySelectorAll(sel));
      if (scope.matches && scope.matches(sel)) els.push(scope);
      els.forEach(function (el) {
        el.addEventListener(name, function () { send(el.getAttribute("data-hid"), TYPES[name]); });
      });
    });
  }

  ws.onopen = function () {
    var p = [];
    str(p, session);
    ws.send(frame(0, p));
    bind(document.body);
  };
  ws.onmessage = function (m) {
    var r = reader(m.data), type = r.byte();
    r.skip(3);
    if (type === 5) {
      r.skip(2);
      console.warn("withhover:", r.str());
      return;
    }
    if (type !== 2) return;
    r.uvarint();
    for (var n = r.uvarint(); n > 0; n--) {
      var op = r.byte(), hid = r.str(), html = r.str();
      if (op !== 1) continue;
      var el = document.querySelector('[data-hid="' + hid + '"]');
      if (!el) continue;
      var tpl = document.createElement("template");
      tpl.innerHTML = html;
      var fresh = tpl.content.firstElementChild;
      el.replaceWith(fresh);
      bind(fresh);
    }
  };
})();`
